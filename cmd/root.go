/*
 * This file is part of research-engine.
 *
 * research-engine is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * research-engine is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with research-engine.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package cmd

import (
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/caredata-foundation/research-engine/api"
	"github.com/caredata-foundation/research-engine/engine"
	"github.com/caredata-foundation/research-engine/pkg"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	confInterface = "interface"
	confPort      = "port"
	confDatadir   = "datadir"
)

var e = engine.NewResearchEngine()
var rootCmd = e.Cmd

var cfgFile string

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the research query api server",
		Run: func(cmd *cobra.Command, args []string) {
			re := pkg.ResearchEngineInstance()
			re.Config.Datadir = viper.GetString(confDatadir)
			if err := re.Start(); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
			defer re.Shutdown()

			server := echo.New()
			server.HideBanner = true
			server.Use(middleware.Logger())
			api.RegisterHandlers(server, api.Wrapper{Re: re})
			server.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
			server.GET("/status", func(ctx echo.Context) error {
				return ctx.String(200, re.Diagnostics())
			})
			addr := fmt.Sprintf("%s:%d", viper.GetString(confInterface), viper.GetInt(confPort))
			server.Logger.Fatal(server.Start(addr))
		},
	})

	rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.research-engine.yaml)")

	rootCmd.Flags().String(confInterface, "localhost", "Server interface binding")
	rootCmd.Flags().StringP(confPort, "p", "1324", "Server listen port")
	rootCmd.Flags().String(confDatadir, "", "Query store directory (empty keeps results in memory)")

	viper.BindPFlag(confPort, rootCmd.Flags().Lookup(confPort))
	viper.BindPFlag(confInterface, rootCmd.Flags().Lookup(confInterface))
	viper.BindPFlag(confDatadir, rootCmd.Flags().Lookup(confDatadir))

	viper.SetEnvPrefix("RESEARCH_ENGINE")
	viper.BindEnv(confPort)
	viper.BindEnv(confInterface)
	viper.BindEnv(confDatadir)

}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".research-engine" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".research-engine")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
