package site

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/wpcli"
	"github.com/spiritoffootball/cli-tools-for-sof/pkg/wpcli/wpclitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestEnumeratorList(t *testing.T) {
	tests := []struct {
		name        string
		result      *wpcli.Result
		runErr      error
		filter      Filter
		want        []Site
		errContains string
		wantEnumErr bool
	}{
		{
			name:   "sites_in_listing_order",
			result: wpclitest.OK(`["https://a.test/","https://b.test/"]`),
			want:   []Site{{URL: "https://a.test/"}, {URL: "https://b.test/"}},
		},
		{
			name:   "empty_network",
			result: wpclitest.OK(`[]`),
			want:   []Site{},
		},
		{
			name:   "filter_applied",
			result: wpclitest.OK(`["https://a.test/","https://b.test/","https://c.example/"]`),
			filter: Filter{Include: []string{"https://*.test"}, Exclude: []string{"https://b.*"}},
			want:   []Site{{URL: "https://a.test/"}},
		},
		{
			name:        "malformed_payload",
			result:      wpclitest.OK(`Error: not json`),
			errContains: "failed to decode JSON",
			wantEnumErr: true,
		},
		{
			name:        "listing_exit_non_zero",
			result:      wpclitest.Fail(1, "Error: This is not a multisite installation."),
			errContains: "This is not a multisite installation. (1)",
		},
		{
			name:        "executor_failure",
			runErr:      assert.AnError,
			errContains: "listing sites",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
			exec := wpclitest.NewMockExecutor(t)
			exec.On("Run", mock.Anything, ListInvocation()).Return(tt.result, tt.runErr).Once()

			sites, err := NewEnumerator(exec, tt.filter).List(ctx)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				var enumErr *EnumerationError
				assert.Equal(t, tt.wantEnumErr, errors.As(err, &enumErr), "enumeration error type")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, sites)
		})
	}
}

func TestListInvocationIsAmbient(t *testing.T) {
	inv := ListInvocation()
	assert.Equal(t, []string{"site", "list", "--field=url", "--format=json"}, inv.Args)
	assert.Empty(t, inv.URL)
	assert.False(t, inv.Isolated)
}

func TestSiteTarget(t *testing.T) {
	assert.Equal(t, "https://a.test", Site{URL: "https://a.test/"}.Target())
	assert.Equal(t, "https://a.test/sub", Site{URL: "https://a.test/sub//"}.Target())
	assert.Equal(t, "https://a.test/", Site{URL: "https://a.test/"}.String())
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		site   string
		want   bool
	}{
		{name: "empty_filter_matches", site: "https://a.test", want: true},
		{name: "include_match", filter: Filter{Include: []string{"https://*.test"}}, site: "https://a.test/", want: true},
		{name: "include_miss", filter: Filter{Include: []string{"https://*.test"}}, site: "https://a.example", want: false},
		{name: "exclude_wins", filter: Filter{Include: []string{"**"}, Exclude: []string{"https://a.test"}}, site: "https://a.test/", want: false},
		{name: "subdirectory_site", filter: Filter{Include: []string{"https://main.test/**"}}, site: "https://main.test/de/", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(Site{URL: tt.site}))
		})
	}
}

func TestFilterValidate(t *testing.T) {
	require.NoError(t, Filter{Include: []string{"https://*.test"}}.Validate())

	err := Filter{Exclude: []string{"https://[a.test"}}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid site pattern")
}
