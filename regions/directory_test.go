package regions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"land_scrooper/models"
)

type fakeFetcher struct {
	children map[string][]models.Region
	err      error
	calls    map[string]int
}

func (f *fakeFetcher) FetchRegionChildren(_ context.Context, parentCode string) ([]models.Region, error) {
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[parentCode]++
	if f.err != nil {
		return nil, f.err
	}
	return f.children[parentCode], nil
}

func TestResolveCodeStatic(t *testing.T) {
	d := NewDirectory(nil)
	ctx := context.Background()

	tests := []struct {
		name string
		want string
	}{
		{"강남구", "1168000000"},
		{"서울특별시", "1100000000"},
		{"성남시분당구", "4113500000"},
		{"해운대구", "2635000000"},
		{"서울 중구", "1114000000"},
		{"인천광역시 중구", "2811000000"},
		{"분당", "4113500000"},
		{"1168000000", "1168000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := d.ResolveCode(ctx, tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestResolveCodeUnknown(t *testing.T) {
	d := NewDirectory(nil)

	_, ok := d.ResolveCode(context.Background(), "아틀란티스")
	assert.False(t, ok)

	_, ok = d.ResolveCode(context.Background(), "  ")
	assert.False(t, ok)
}

func TestResolveCodeFallsBackToRemote(t *testing.T) {
	f := &fakeFetcher{children: map[string][]models.Region{
		"1168000000": {{Code: "1168010100", Name: "역삼동", Type: models.RegionTown}},
	}}
	d := NewDirectory(f)

	code, ok := d.ResolveCode(context.Background(), "강남구 역삼동")
	require.True(t, ok)
	assert.Equal(t, "1168010100", code)

	// second lookup is served from the per-parent cache
	_, ok = d.ResolveCode(context.Background(), "강남구 역삼동")
	require.True(t, ok)
	assert.Equal(t, 1, f.calls["1168000000"])
}

func TestResolveCodeUnknownStaysLocal(t *testing.T) {
	f := &fakeFetcher{}
	d := NewDirectory(f)
	ctx := context.Background()

	_, ok := d.ResolveCode(ctx, "아틀란티스")
	assert.False(t, ok)
	assert.Empty(t, f.calls, "unqualified names never scan the remote directory")

	_, ok = d.ResolveCode(ctx, "강남구 없는동")
	assert.False(t, ok)
	_, ok = d.ResolveCode(ctx, "강남구 없는동")
	assert.False(t, ok)
	assert.Equal(t, 1, f.calls["1168000000"], "empty answers are cached")
}

type blockErr struct{}

func (blockErr) Error() string { return "blocked by upstream (status 429)" }
func (blockErr) Blocked() bool { return true }

func TestDirectoryPausesAfterBlock(t *testing.T) {
	f := &fakeFetcher{err: blockErr{}}
	d := NewDirectory(f)
	now := time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }
	ctx := context.Background()

	_, ok := d.ResolveCode(ctx, "강남구 역삼동")
	assert.False(t, ok)
	assert.True(t, d.Blocked())

	_, ok = d.ResolveCode(ctx, "서초구 반포동")
	assert.False(t, ok)
	assert.Equal(t, 1, f.calls["1168000000"])
	assert.Zero(t, f.calls["1165000000"], "no remote calls while paused")

	now = now.Add(blockPause)
	assert.False(t, d.Blocked())
	d.ListChildren(ctx, "1165000000")
	assert.Equal(t, 1, f.calls["1165000000"])
}

func TestListChildrenErrorsAreNotCached(t *testing.T) {
	f := &fakeFetcher{err: errors.New("connection reset")}
	d := NewDirectory(f)
	ctx := context.Background()

	assert.Empty(t, d.ListChildren(ctx, "1168000000"))
	f.err = nil
	f.children = map[string][]models.Region{"1168000000": {{Code: "1168010100", Name: "역삼동"}}}
	assert.Len(t, d.ListChildren(ctx, "1168000000"), 1)
}

func TestListChildren(t *testing.T) {
	f := &fakeFetcher{children: map[string][]models.Region{
		"1168000000": {
			{Code: "1168010100", Name: "역삼동", Type: models.RegionTown},
			{Code: "1168010300", Name: "개포동", Type: models.RegionTown},
		},
	}}
	d := NewDirectory(f)
	ctx := context.Background()

	seoul := d.ListChildren(ctx, "1100000000")
	assert.Len(t, seoul, 25)
	assert.Zero(t, f.calls["1100000000"], "static level must not hit the network")

	towns := d.ListChildren(ctx, "1168000000")
	require.Len(t, towns, 2)
	assert.Equal(t, "역삼동", towns[0].Name)
}

func TestListChildrenFailsOpen(t *testing.T) {
	d := NewDirectory(&fakeFetcher{err: errors.New("connection reset")})

	assert.Empty(t, d.ListChildren(context.Background(), "1168000000"))
}

func TestRegionNameAndHierarchy(t *testing.T) {
	assert.Equal(t, "강남구", RegionName("1168000000"))
	assert.Equal(t, "", RegionName("9999999999"))

	path := Hierarchy("1168010100")
	require.Len(t, path, 2)
	assert.Equal(t, "서울특별시", path[0].Name)
	assert.Equal(t, "강남구", path[1].Name)

	path = Hierarchy("4113500000")
	require.Len(t, path, 2)
	assert.Equal(t, "성남시분당구", path[1].Name)

	assert.Nil(t, Hierarchy("abc"))
}

func TestFindKnownName(t *testing.T) {
	assert.Equal(t, "성남시분당구", FindKnownName("경기도 성남시분당구 정자동"))
	assert.Equal(t, "", FindKnownName("no region here"))
}
