//
// Copyright 2026 AMAKI France
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package api

import (
	"fmt"

	"github.com/deepmap/oapi-codegen/pkg/runtime"
	"github.com/labstack/echo/v4"

	"github.com/amaki-france/adherents/component"
	"github.com/amaki-france/adherents/internal/app/adherents"
)

type pagination struct {
	Limit  int
	Offset int
}

func pathID(ctx echo.Context, name string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, ctx.Param(name), &id)
	if err != nil || id <= 0 {
		return 0, adherents.NewValidationError(fmt.Sprintf("Invalid format for parameter %s", name))
	}
	return id, nil
}

func queryString(ctx echo.Context, name string) (string, error) {
	var value *string
	err := runtime.BindQueryParameter("form", true, false, name, ctx.QueryParams(), &value)
	if err != nil {
		return "", adherents.NewValidationError(fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}

func queryBool(ctx echo.Context, name string) (bool, error) {
	var value *bool
	err := runtime.BindQueryParameter("form", true, false, name, ctx.QueryParams(), &value)
	if err != nil {
		return false, adherents.NewValidationError(fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return value != nil && *value, nil
}

// paginate reads limit and offset, leaving range checks to the services.
func paginate(ctx echo.Context) (pagination, error) {
	var limit, offset *int
	p := pagination{Limit: component.DefaultLimit}
	verr := &adherents.ValidationError{}
	if err := runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &limit); err != nil {
		verr.Add(fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", ctx.QueryParams(), &offset); err != nil {
		verr.Add(fmt.Sprintf("Invalid format for parameter offset: %s", err))
	}
	if err := verr.Err(); err != nil {
		return p, err
	}
	if limit != nil {
		p.Limit = *limit
	}
	if offset != nil {
		p.Offset = *offset
	}
	return p, nil
}
