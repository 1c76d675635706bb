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

package engine

import (
	"github.com/deepmap/oapi-codegen/pkg/runtime"
	"github.com/spf13/cobra"

	"github.com/caredata-foundation/research-engine/api"
	"github.com/caredata-foundation/research-engine/pkg"
)

// Engine describes a runnable subsystem: its command, lifecycle hooks and routes.
type Engine struct {
	Name      string
	Cmd       *cobra.Command
	Configure func() error
	Start     func() error
	Shutdown  func() error
	Routes    func(router runtime.EchoRouter)
}

// NewResearchEngine wires the shared engine instance into an Engine descriptor.
func NewResearchEngine() *Engine {
	re := pkg.ResearchEngineInstance()

	return &Engine{
		Name:      "ResearchEngineInstance",
		Cmd:       cmd(),
		Configure: re.Configure,
		Start:     re.Start,
		Shutdown:  re.Shutdown,
		Routes: func(router runtime.EchoRouter) {
			api.RegisterHandlers(router, &api.Wrapper{Re: re})
		},
	}
}

func cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "research-engine",
		Short: "research query processing engine",
	}
}
