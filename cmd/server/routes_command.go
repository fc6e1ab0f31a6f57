package main

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/router"
)

func newRoutesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "routes",
		Short:       "Print the registered HTTP routes",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Handlers are never invoked here, so no store or broker is needed.
			cfg := config.Config{}
			e := router.New(cfg, nil, router.NewServices(cfg, nil, nil, zerolog.Nop()), nil, zerolog.Nop())

			routes := e.Routes()
			sort.Slice(routes, func(i, j int) bool {
				if routes[i].Path != routes[j].Path {
					return routes[i].Path < routes[j].Path
				}
				return routes[i].Method < routes[j].Method
			})
			rows := make([][]string, 0, len(routes))
			for _, r := range routes {
				if r.Method == "echo_route_not_found" {
					continue
				}
				rows = append(rows, []string{r.Method, r.Path, r.Name})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Method", "Path", "Handler"}, rows, nil))
			return nil
		},
	}
}
