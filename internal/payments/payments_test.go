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

package payments

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	require.Equal(t, "0.00", FormatAmount(0))
	require.Equal(t, "0.05", FormatAmount(5))
	require.Equal(t, "12.50", FormatAmount(1250))
	require.Equal(t, "-3.01", FormatAmount(-301))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		err  bool
	}{
		{in: "12.50", want: 1250},
		{in: "12.5", want: 1250},
		{in: "12", want: 1200},
		{in: "0.07", want: 7},
		{in: "-1.10", want: -110},
		{in: "1.234", err: true},
		{in: "abc", err: true},
		{in: "1.x0", err: true},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			got, err := ParseAmount(test.in)
			if test.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.want, got)
		})
	}
}
