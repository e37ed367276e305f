package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/spf13/cobra"

	"github.com/pspoerri/viewlink/internal/coord"
	"github.com/pspoerri/viewlink/internal/linkurl"
	"github.com/pspoerri/viewlink/internal/reproject"
	"github.com/pspoerri/viewlink/internal/viewpoint"
)

func newURLCmd(a *app) *cobra.Command {
	var (
		snapshot string
		title    string
		tmpl     string
		epsg     string
		proj4    string
	)
	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print the share URL for a viewpoint snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var spec reproject.Spec
			if tmpl == "" {
				link, ok := a.cfg.Link(title)
				if !ok {
					if title == "" {
						return fmt.Errorf("no links configured, pass --template")
					}
					return fmt.Errorf("no link titled %q", title)
				}
				tmpl, spec = link.TemplateURL, link.Projection
			}
			if cmd.Flags().Changed("epsg") || cmd.Flags().Changed("proj4") {
				spec = reproject.Spec{EPSG: epsg, Proj4: proj4}
			}

			m, err := viewpoint.LoadSnapshot(snapshot)
			if err != nil {
				return err
			}
			b := linkurl.NewBuilder(linkurl.WithLogger(a.logger))
			u, err := b.Build(cmd.Context(), tmpl, m, &spec)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&snapshot, "snapshot", "", "Viewpoint snapshot file (YAML or JSON)")
	f.StringVar(&title, "link", "", "Title of a configured link (default: the first)")
	f.StringVar(&tmpl, "template", "", "URL template with {{placeholders}}, instead of a configured link")
	f.StringVar(&epsg, "epsg", "", "Target projection, e.g. EPSG:25832")
	f.StringVar(&proj4, "proj4", "", "proj4 definition for --epsg")
	_ = cmd.MarkFlagRequired("snapshot")
	cmd.MarkFlagsMutuallyExclusive("link", "template")
	return cmd
}

func newExtentCmd(a *app) *cobra.Command {
	var (
		snapshot string
		epsg     string
		proj4    string
	)
	cmd := &cobra.Command{
		Use:   "extent",
		Short: "Print the visible extent of a viewpoint snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := viewpoint.LoadSnapshot(snapshot)
			if err != nil {
				return err
			}
			b := linkurl.NewBuilder(linkurl.WithLogger(a.logger))
			attrs, err := b.Attributes(cmd.Context(), m, &reproject.Spec{EPSG: epsg, Proj4: proj4})
			if err != nil {
				return err
			}
			e, _ := attrs[linkurl.AttrExtent].([]float64)
			fmt.Fprintln(cmd.OutOrStdout(), formatNumbers(e))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&snapshot, "snapshot", "", "Viewpoint snapshot file (YAML or JSON)")
	f.StringVar(&epsg, "epsg", "", "Target projection, e.g. EPSG:25832")
	f.StringVar(&proj4, "proj4", "", "proj4 definition for --epsg")
	_ = cmd.MarkFlagRequired("snapshot")
	return cmd
}

func newDestinationCmd() *cobra.Command {
	var lon, lat, bearingDeg, distance float64
	cmd := &cobra.Command{
		Use:   "destination",
		Short: "Print the point reached from a start point along a bearing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if lat < -90 || lat > 90 {
				return fmt.Errorf("latitude %g out of range", lat)
			}
			p := coord.Destination(orb.Point{lon, lat}, bearingDeg*math.Pi/180, distance)
			fmt.Fprintln(cmd.OutOrStdout(), formatNumbers([]float64{p[0], p[1]}))
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&lon, "lon", 0, "Start longitude in degrees")
	f.Float64Var(&lat, "lat", 0, "Start latitude in degrees")
	f.Float64Var(&bearingDeg, "bearing-deg", 0, "Bearing in degrees clockwise from north")
	f.Float64Var(&distance, "distance", 0, "Distance in meters")
	_ = cmd.MarkFlagRequired("lon")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("distance")
	return cmd
}

func formatNumbers(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, " ")
}
