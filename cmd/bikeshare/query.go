package main

import (
	"github.com/spf13/cobra"

	"github.com/pkordes/bikeshare-stats/internal/domain"
	"github.com/pkordes/bikeshare-stats/internal/report"
	"github.com/pkordes/bikeshare-stats/internal/service"
)

// queryFlags are the filter flags shared by stats and raw.
type queryFlags struct {
	city, month, day, output string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.city, "city", "", "chicago, new york city or washington")
	cmd.Flags().StringVar(&f.month, "month", domain.AllValues, "all or january..june")
	cmd.Flags().StringVar(&f.day, "day", domain.AllValues, "all or monday..sunday")
	cmd.Flags().StringVarP(&f.output, "output", "o", report.FormatText, "Output format [text, json]")
	_ = cmd.MarkFlagRequired("city")
}

// query validates the flags the same way the HTTP API validates a body.
func (f *queryFlags) query() (domain.Query, error) {
	return service.Validate(domain.RawRequest{"city": f.city, "month": f.month, "day": f.day})
}

func newStatsCmd(a *app) *cobra.Command {
	var f queryFlags
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print time, station, trip duration and user statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := f.query()
			if err != nil {
				return err
			}
			w, err := report.NewWriter(cmd.OutOrStdout(), f.output)
			if err != nil {
				return err
			}
			cfg, err := a.config()
			if err != nil {
				return err
			}
			source, closeSource, err := a.rowSource(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeSource()

			stats, err := service.NewStatsService(source, nil, a.log).AllStats(cmd.Context(), q)
			if err != nil {
				return err
			}
			return w.Stats(q, stats)
		},
	}
	f.register(cmd)
	return cmd
}

func newRawCmd(a *app) *cobra.Command {
	var (
		f          queryFlags
		startIndex int
	)
	cmd := &cobra.Command{
		Use:   "raw",
		Short: "Print one page of raw trip rows",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := f.query()
			if err != nil {
				return err
			}
			w, err := report.NewWriter(cmd.OutOrStdout(), f.output)
			if err != nil {
				return err
			}
			cfg, err := a.config()
			if err != nil {
				return err
			}
			source, closeSource, err := a.rowSource(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeSource()

			page, err := service.NewStatsService(source, nil, a.log).RawData(cmd.Context(), q, startIndex)
			if err != nil {
				return err
			}
			return w.Page(q, page)
		},
	}
	f.register(cmd)
	cmd.Flags().IntVar(&startIndex, "start-index", 0, "Offset of the first row in the filtered view")
	return cmd
}
