package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/foodnest/foodnest/app/controllers"
	appmw "github.com/foodnest/foodnest/app/middleware"
	"github.com/foodnest/foodnest/app/routes"
	"github.com/foodnest/foodnest/internal/server"
	"github.com/foodnest/foodnest/pkg/router"
)

// foodnest serve — start the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// foodnest route:list — print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Register against nil services: handlers are never invoked,
		// only the route table is read.
		r := router.New()
		routes.RegisterAPI(r, routes.Deps{
			Auth:        controllers.NewAuthController(nil),
			Users:       controllers.NewUserController(nil),
			Products:    controllers.NewProductController(nil),
			Orders:      controllers.NewOrderController(nil),
			RequireUser: appmw.RequireUser(nil),
		})

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
