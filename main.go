package main

import (
	"bytes"
	"fmt"
	"os"

	uuid "github.com/satori/go.uuid"
	"github.com/spf13/cobra"

	"github.com/pivolan/churn_chart/churn"
	"github.com/pivolan/churn_chart/config"
	"github.com/pivolan/churn_chart/logging"
	"github.com/pivolan/churn_chart/plot"
)

const pageTitle = "Customer Churn Dashboard"

func main() {
	if err := newRootCmd(config.GetConfig()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "churnchart",
		Short: "Render the monthly customer churn chart",
		Long: `churnchart draws the number of customers who left per month as a line chart.
It renders into a host page through Chart.js, into an ECharts page, or into a PNG/SVG image.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newRenderCmd(cfg), newTableCmd(cfg), newConfigCmd(), newSendCmd(cfg))
	return rootCmd
}

func newRenderCmd(base *config.Config) *cobra.Command {
	cfg := *base
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the churn chart to a page or an image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, &cfg)
		},
	}
	cmd.Flags().StringVarP(&cfg.Format, "format", "f", cfg.Format, "Output format: chartjs, echarts, png or svg")
	cmd.Flags().StringVarP(&cfg.OutputPath, "output", "o", cfg.OutputPath, "Output file path, - for stdout (default: derived from the series label)")
	cmd.Flags().StringVar(&cfg.HostPagePath, "page", cfg.HostPagePath, "Host page to draw into, rejected for formats other than chartjs (default: embedded page)")
	cmd.Flags().StringVar(&cfg.ElementID, "element", cfg.ElementID, "Id of the element that receives the chart")
	return cmd
}

func runRender(cmd *cobra.Command, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newRunLogger(cmd, cfg).WithComponent("render")

	renderer, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	chartCfg := churn.MonthlyChurnChart()
	var buf bytes.Buffer
	if err := renderer.Render(&buf, chartCfg); err != nil {
		logger.Error("render failed", "format", cfg.Format, "element", cfg.ElementID, "error", err)
		return fmt.Errorf("render %s chart: %w", cfg.Format, err)
	}

	path := cfg.OutputPath
	if path == "-" {
		_, err = buf.WriteTo(cmd.OutOrStdout())
		return err
	}
	if path == "" {
		path = outputFileName(chartCfg.Series.Label, cfg.Format)
	}
	size := buf.Len()
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("chart written", "path", path, "format", cfg.Format, "bytes", size)
	return nil
}

func newRenderer(cfg *config.Config) (plot.Renderer, error) {
	opts := plot.Options{
		ElementID:  cfg.ElementID,
		PageTitle:  pageTitle,
		ScriptSrc:  cfg.ChartJSURL,
		AssetsHost: cfg.EChartsAssetsHost,
		Width:      cfg.Width,
		Height:     cfg.Height,
	}
	if cfg.HostPagePath != "" {
		f, err := os.Open(cfg.HostPagePath)
		if err != nil {
			return nil, fmt.Errorf("open host page: %w", err)
		}
		defer f.Close()
		if opts.Page, err = plot.LoadHostPage(f); err != nil {
			return nil, err
		}
	}
	return plot.NewRenderer(cfg.Format, opts)
}

func newTableCmd(base *config.Config) *cobra.Command {
	cfg := *base
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the monthly churn table and key metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chartCfg := churn.MonthlyChurnChart()
			monthly, err := GenerateChurnTable(chartCfg)
			if err != nil {
				return err
			}
			summary, err := churn.Summarize(chartCfg, cfg.TotalCustomers)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, monthly)
			fmt.Fprintln(out)
			fmt.Fprintln(out, GenerateSummaryTable(summary))
			return nil
		},
	}
	cmd.Flags().IntVar(&cfg.TotalCustomers, "customers", cfg.TotalCustomers, "Total number of customers used for the churn rate")
	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the Chart.js configuration of the churn chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := plot.MarshalChartJS(churn.MonthlyChurnChart(), true)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newSendCmd(base *config.Config) *cobra.Command {
	cfg := *base
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Render the churn chart as PNG and post it to a Telegram chat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd, &cfg)
		},
	}
	cmd.Flags().Int64Var(&cfg.TgChatID, "chat", cfg.TgChatID, "Telegram chat id")
	return cmd
}

func runSend(cmd *cobra.Command, cfg *config.Config) error {
	if err := cfg.ValidateTelegram(); err != nil {
		return err
	}
	logger := newRunLogger(cmd, cfg).WithComponent("send")

	chartCfg := churn.MonthlyChurnChart()
	summary, err := churn.Summarize(chartCfg, cfg.TotalCustomers)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	image := &plot.ImageRenderer{Format: "png", Width: cfg.Width, Height: cfg.Height}
	if err := image.Render(&buf, chartCfg); err != nil {
		return fmt.Errorf("render png chart: %w", err)
	}

	api, err := newChartSender(cfg.TgToken)
	if err != nil {
		return err
	}
	fileName := outputFileName(chartCfg.Series.Label, "png")
	if err := sendGraphVisualization(api, logger, cfg.TgChatID, buf.Bytes(), fileName, churnCaption(summary)); err != nil {
		logger.Error("send failed", "chat_id", cfg.TgChatID, "error", err)
		return err
	}
	logger.Info("chart sent", "chat_id", cfg.TgChatID, "bytes", buf.Len())
	return nil
}

// newRunLogger tags every record of one invocation with a fresh run id.
func newRunLogger(cmd *cobra.Command, cfg *config.Config) *logging.Logger {
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.LogLevel)
	logCfg.Output = cmd.ErrOrStderr()
	logger := logging.New(logCfg).With("run_id", uuid.NewV4().String())
	logging.SetDefault(logger)
	return logger
}
