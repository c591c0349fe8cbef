// Lantern: Content-source extensions and a host harness for manga readers.
// Copyright (C) 2025 Luca M. Schmidt (LuMiSxh)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package argosscan

import (
	"context"
	"strings"

	"Lantern/pkg/engine/network"
	"Lantern/pkg/errors"
	"Lantern/pkg/prefs"
)

const tokenNotFound = "Token não informado. Defina-o nas configurações da extensão."

// TokenInterceptor adds the access token stored in p to every request sent to
// endpoint. Without a token the request fails before it leaves the client.
func TokenInterceptor(p *prefs.Preferences, endpoint string) network.Interceptor {
	return func(ctx context.Context, req *network.Request, next network.Handler) (*network.Response, error) {
		if !strings.HasPrefix(req.URL, endpoint) {
			return next(ctx, req)
		}

		token := p.GetString(tokenPrefKey, "")
		if token == "" {
			return nil, errors.Track(errors.ErrMissingConfig).
				WithMessage(tokenNotFound).
				WithContext("preference", tokenPrefKey).
				WithContext("scope", p.Scope()).
				AsConfig().
				Error()
		}

		decorated := req.Clone()
		decorated.Headers["Token"] = token
		return next(ctx, decorated)
	}
}
