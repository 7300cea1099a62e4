package regions

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"land_scrooper/logging"
	"land_scrooper/models"
)

// Fetcher loads the children of a region from the remote directory.
type Fetcher interface {
	FetchRegionChildren(ctx context.Context, parentCode string) ([]models.Region, error)
}

// blockPause is how long remote lookups stay off after the site blocks one.
const blockPause = 5 * time.Minute

// Directory answers name-to-code and code-to-children questions. Static
// tables are consulted first; the remote fetcher fills in everything else.
type Directory struct {
	fetcher Fetcher
	log     zerolog.Logger
	now     func() time.Time

	mu           sync.Mutex
	cache        map[string][]models.Region
	blockedUntil time.Time
}

func NewDirectory(fetcher Fetcher) *Directory {
	return &Directory{
		fetcher: fetcher,
		log:     logging.For("regions"),
		now:     time.Now,
		cache:   make(map[string][]models.Region),
	}
}

// Blocked reports whether a remote lookup was refused by the site recently.
// While it is true the directory answers from static tables and its cache
// only.
func (d *Directory) Blocked() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.now().Before(d.blockedUntil)
}

// Provinces returns the 17 top-level regions.
func Provinces() []models.Region {
	out := make([]models.Region, len(provinces))
	copy(out, provinces)
	return out
}

// ResolveCode maps a Korean region name to its code. A name may be
// qualified with its province ("서울 중구") to pick between same-named
// districts, or with its district ("강남구 역삼동") to reach a town, which
// costs at most one remote lookup per district. Unqualified names are
// answered from the static tables only. The second result is false when
// nothing matches.
func (d *Directory) ResolveCode(ctx context.Context, name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if IsCode(name) {
		return name, true
	}

	if fields := strings.Fields(name); len(fields) > 1 {
		if code, ok := d.resolveQualified(ctx, fields[0], fields[len(fields)-1]); ok {
			return code, true
		}
	}

	if r, ok := findExact(staticRegions(), name); ok {
		return r.Code, true
	}
	if r, ok := findContaining(staticRegions(), name); ok {
		return r.Code, true
	}

	d.log.Warn().Str("name", name).Msg("region not found")
	return "", false
}

func (d *Directory) resolveQualified(ctx context.Context, parentName, childName string) (string, bool) {
	parent, ok := findParent(parentName)
	if !ok {
		return "", false
	}

	children := d.ListChildren(ctx, parent.Code)
	if r, ok := findExact(children, childName); ok {
		return r.Code, true
	}
	if r, ok := findContaining(children, childName); ok {
		return r.Code, true
	}
	return "", false
}

// findParent picks the qualifier of a two-part name, preferring provinces.
func findParent(name string) (models.Region, bool) {
	all := Provinces()
	if r, ok := findExact(all, name); ok {
		return r, true
	}
	if r, ok := findContaining(all, name); ok {
		return r, true
	}
	if r, ok := findExact(staticRegions(), name); ok {
		return r, true
	}
	return models.Region{}, false
}

// ListChildren returns the regions directly under parentCode. Remote
// failures are logged and yield an empty list.
func (d *Directory) ListChildren(ctx context.Context, parentCode string) []models.Region {
	if children, ok := districts[parentCode]; ok {
		out := make([]models.Region, len(children))
		copy(out, children)
		return out
	}
	children, _ := d.remoteChildren(ctx, parentCode)
	return children
}

// remoteChildren fetches the children of parentCode once. Empty answers are
// cached too, so repeated lookups of unknown towns stay local. Errors are not
// cached; a block pauses every remote lookup for blockPause.
func (d *Directory) remoteChildren(ctx context.Context, parentCode string) ([]models.Region, error) {
	if d.fetcher == nil {
		return nil, nil
	}

	d.mu.Lock()
	cached, ok := d.cache[parentCode]
	blocked := d.now().Before(d.blockedUntil)
	d.mu.Unlock()
	if ok {
		return cached, nil
	}
	if blocked {
		return nil, errRemotePaused
	}

	children, err := d.fetcher.FetchRegionChildren(ctx, parentCode)
	if err != nil {
		d.log.Warn().Err(err).Str("parent", parentCode).Msg("region list unavailable")
		if isBlocked(err) {
			d.mu.Lock()
			d.blockedUntil = d.now().Add(blockPause)
			d.mu.Unlock()
		}
		return nil, err
	}

	d.mu.Lock()
	d.cache[parentCode] = children
	d.mu.Unlock()
	return children, nil
}

var errRemotePaused = &pausedError{}

type pausedError struct{}

func (*pausedError) Error() string { return "remote region lookups paused after a block" }
func (*pausedError) Blocked() bool { return true }

// isBlocked matches any error that reports itself as a site block, such as
// the API client's BlockedError.
func isBlocked(err error) bool {
	var b interface{ Blocked() bool }
	return errors.As(err, &b) && b.Blocked()
}

// RegionName returns the static name for a code, or "" when unknown.
func RegionName(code string) string {
	for _, r := range staticRegions() {
		if r.Code == code {
			return r.Name
		}
	}
	return ""
}

// Hierarchy returns the statically known levels of code, province first.
func Hierarchy(code string) []models.Region {
	if !IsCode(code) {
		return nil
	}

	var path []models.Region
	provinceCode := code[:2] + "00000000"
	if p, ok := findByCode(provinces, provinceCode); ok {
		path = append(path, p)
	}
	if code == provinceCode {
		return path
	}

	districtCode := code[:5] + "00000"
	if r, ok := findByCode(districts[provinceCode], districtCode); ok {
		path = append(path, r)
	} else if r, ok := findByCode(districts[provinceCode], code); ok {
		path = append(path, r)
	}
	return path
}

// FindKnownName returns the longest static region name contained in text.
func FindKnownName(text string) string {
	best := ""
	for _, r := range staticRegions() {
		if len(r.Name) > len(best) && strings.Contains(text, r.Name) {
			best = r.Name
		}
	}
	return best
}

// IsCode reports whether s looks like a 10-digit region code.
func IsCode(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

var (
	staticOnce sync.Once
	staticAll  []models.Region
)

// staticRegions flattens the tables in province order so lookups are
// deterministic.
func staticRegions() []models.Region {
	staticOnce.Do(func() {
		staticAll = append(staticAll, provinces...)
		for _, p := range provinces {
			staticAll = append(staticAll, districts[p.Code]...)
		}
	})
	return staticAll
}

func findExact(list []models.Region, name string) (models.Region, bool) {
	for _, r := range list {
		if r.Name == name {
			return r, true
		}
	}
	return models.Region{}, false
}

func findContaining(list []models.Region, name string) (models.Region, bool) {
	for _, r := range list {
		if strings.Contains(r.Name, name) {
			return r, true
		}
	}
	return models.Region{}, false
}

func findByCode(list []models.Region, code string) (models.Region, bool) {
	for _, r := range list {
		if r.Code == code {
			return r, true
		}
	}
	return models.Region{}, false
}
