package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/quantforge/lobsim/backtest"
	"github.com/quantforge/lobsim/common"
	"github.com/quantforge/lobsim/config"
	"github.com/quantforge/lobsim/data"
	"github.com/quantforge/lobsim/log"
	"github.com/quantforge/lobsim/signals"
	"github.com/quantforge/lobsim/statistics"
	"github.com/quantforge/lobsim/strategies"
)

var app = &cli.App{
	Name:  "lobsim",
	Usage: "limit order book simulation and strategy backtesting",
	Commands: []*cli.Command{
		{
			Name:  "run",
			Usage: "replay an event file through a strategy and report performance",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "config",
					Aliases:  []string{"c"},
					Usage:    "path to the run configuration file",
					Required: true,
				},
				&cli.BoolFlag{
					Name:  "verbose",
					Usage: "enable debug logging",
				},
			},
			Action: runAction,
		},
		{
			Name:   "strategies",
			Usage:  "list the available strategies",
			Action: strategiesAction,
		},
	},
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAction(c *cli.Context) error {
	cfg, err := config.ReadConfigFromFile(c.String("config"))
	if err != nil {
		return err
	}
	level := cfg.Log.Level
	if c.Bool("verbose") {
		level = "DEBUG"
	}
	if err := log.SetGlobalLevel(level); err != nil {
		return err
	}

	settings, err := assembleSettings(cfg)
	if err != nil {
		return err
	}
	engine, err := backtest.New(settings)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := engine.Run(ctx); err != nil {
		return err
	}
	report, err := engine.Results()
	if err != nil {
		return err
	}
	printReport(engine, report)
	return nil
}

func assembleSettings(cfg *config.Config) (*backtest.Settings, error) {
	strategy, err := strategies.LoadStrategyByName(cfg.Strategy.Name)
	if err != nil {
		return nil, err
	}
	if len(cfg.Strategy.CustomSettings) > 0 {
		if err := strategy.SetCustomSettings(cfg.Strategy.CustomSettings); err != nil {
			return nil, err
		}
	}
	source, err := data.NewCSVSource(cfg.DataFile)
	if err != nil {
		return nil, err
	}
	return &backtest.Settings{
		Instrument:    cfg.Instrument,
		Source:        source,
		Strategy:      strategy,
		InitialCash:   decimal.NewFromFloat(cfg.Portfolio.InitialCash),
		CommissionBps: decimal.NewFromFloat(cfg.Portfolio.CommissionBps),
		Signals:       signals.Config{Depth: cfg.Signals.Depth},
		Statistics: statistics.Config{
			IntervalsPerYear: cfg.Statistics.IntervalsPerYear,
			RiskFreeRate:     cfg.Statistics.RiskFreeRate,
			VaRConfidence:    cfg.Statistics.VaRConfidence,
		},
	}, nil
}

func strategiesAction(*cli.Context) error {
	for _, h := range strategies.GetStrategies() {
		fmt.Printf("%-14v %v\n", h.Name(), h.Description())
	}
	return nil
}

func printReport(engine *backtest.Engine, report *statistics.Report) {
	progress := engine.Progress()
	stats := engine.Book().Stats()
	counters := engine.Book().Counters()

	fmt.Printf("Run %v\n\n", engine.ID())
	fmt.Printf("Events processed    %v (skipped %v)\n", progress.EventsProcessed, progress.EventsSkipped)
	fmt.Printf("Book trades         %v for %v volume\n", counters.TradesExecuted, counters.VolumeTraded)
	fmt.Printf("Final book          bid %v / ask %v, %v live orders\n\n",
		stats.BestBid, stats.BestAsk, stats.TotalOrders)

	fmt.Printf("Orders placed       %v (cancelled %v)\n", progress.OrdersPlaced, progress.OrdersCancelled)
	fmt.Printf("Fills               %v\n", report.Fills)
	fmt.Printf("Volume traded       %v\n", report.VolumeTraded)
	fmt.Printf("Commission paid     %.4f\n\n", report.CommissionPaid)

	fmt.Printf("Start equity        %.2f\n", report.StartEquity)
	fmt.Printf("End equity          %.2f\n", report.EndEquity)
	fmt.Printf("Total return        %.4f%%\n", report.TotalReturn*100)
	fmt.Printf("Annualized return   %.4f%%\n", report.AnnualizedReturn*100)
	fmt.Printf("Volatility          %.4f\n", report.Volatility)
	fmt.Printf("Sharpe ratio        %.4f\n", report.SharpeRatio)
	fmt.Printf("Sortino ratio       %.4f\n", report.SortinoRatio)
	fmt.Printf("Calmar ratio        %.4f\n", report.CalmarRatio)
	fmt.Printf("Max drawdown        %.4f%% (peak %.2f at %v, trough %.2f at %v)\n",
		report.MaxDrawdown.Drawdown*100,
		report.MaxDrawdown.Highest.Value,
		report.MaxDrawdown.Highest.Timestamp.Format(common.SimpleTimeFormat),
		report.MaxDrawdown.Lowest.Value,
		report.MaxDrawdown.Lowest.Timestamp.Format(common.SimpleTimeFormat))
	fmt.Printf("Value at risk       %.4f%%\n", report.ValueAtRisk*100)
}
