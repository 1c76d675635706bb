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
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestNewResearchEngine(t *testing.T) {
	engine := NewResearchEngine()

	t.Run("the descriptor carries a command and lifecycle hooks", func(t *testing.T) {
		assert.Equal(t, "ResearchEngineInstance", engine.Name)
		assert.Equal(t, "research-engine", engine.Cmd.Use)
		assert.NotNil(t, engine.Configure)
		assert.NotNil(t, engine.Start)
		assert.NotNil(t, engine.Shutdown)
	})

	t.Run("the routes register against an echo server", func(t *testing.T) {
		server := echo.New()

		engine.Routes(server)

		assert.NotEmpty(t, server.Routes())
	})
}
