// Package notice turns message keys into user-facing text.
//
// English and Japanese catalogs are bundled. Configure points the package at
// an external gettext directory instead, laid out as <dir>/<lang>/LC_MESSAGES.
package notice

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/leonelquinteros/gotext"
)

// Message keys.
const (
	CrossGroupSwap  = "CROSS_GROUP_SWAP"
	CrossGroupRange = "CROSS_GROUP_RANGE"
	CrossGroupMove  = "CROSS_GROUP_MOVE"
	InvalidPosition = "INVALID_POSITION"
	UnknownEntry    = "UNKNOWN_ENTRY"
	RangeStarted    = "RANGE_STARTED"
	BlockNameEmpty  = "BLOCK_NAME_EMPTY"
	BlockNoGeometry = "BLOCK_NO_GEOMETRY"
	BlockReplaced   = "BLOCK_REPLACED"
	BlockAborted    = "BLOCK_ABORTED"
	HallVertices    = "HALL_VERTICES"
	InvalidLayout   = "INVALID_LAYOUT"
	NoPath          = "NO_PATH"
	RouteSummary    = "ROUTE_SUMMARY"
)

const domain = "default"

//go:embed locales/*.po
var bundled embed.FS

var (
	mu     sync.RWMutex
	locale *gotext.Locale // nil means the global gotext configuration
)

func init() {
	if err := Use("en"); err != nil {
		panic(err)
	}
}

// Use selects a bundled catalog by language tag. Region and encoding suffixes
// such as "ja_JP.UTF-8" are ignored.
func Use(lang string) error {
	base := baseLanguage(lang)
	data, err := bundled.ReadFile("locales/" + base + ".po")
	if err != nil {
		return fmt.Errorf("no bundled catalog for %q", lang)
	}
	po := gotext.NewPo()
	po.Parse(data)
	l := gotext.NewLocale("", base)
	l.AddTranslator(domain, po)

	mu.Lock()
	locale = l
	mu.Unlock()
	return nil
}

// Configure loads catalogs from a gettext directory.
func Configure(dir, lang string) {
	gotext.Configure(dir, lang, domain)

	mu.Lock()
	locale = nil
	mu.Unlock()
}

// Text returns the message for key, formatted with args. Unknown keys are
// returned as they are.
func Text(key string, args ...interface{}) string {
	mu.RLock()
	l := locale
	mu.RUnlock()

	if l == nil {
		return gotext.Get(key, args...)
	}
	return l.Get(key, args...)
}

// Languages lists the bundled catalogs.
func Languages() []string {
	entries, err := bundled.ReadDir("locales")
	if err != nil {
		return nil
	}
	var langs []string
	for _, e := range entries {
		langs = append(langs, strings.TrimSuffix(e.Name(), ".po"))
	}
	return langs
}

func baseLanguage(lang string) string {
	lang = strings.ToLower(lang)
	if i := strings.IndexAny(lang, "_-."); i >= 0 {
		lang = lang[:i]
	}
	return lang
}
