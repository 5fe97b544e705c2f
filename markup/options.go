package markup

import (
	"fmt"
	"regexp"

	"golang.org/x/text/language"

	"fsc/config"
)

// DefaultContainer is the name of required top level element.
const DefaultContainer = "fscode"

// WikiProvider gives access to external wiki engine. Single provider
// represents single wiki, inter-wiki linking requires several providers.
type WikiProvider interface {
	// HasPage reports whether page exists.
	HasPage(page string) bool
	// URLForPage returns link to the page.
	URLForPage(page string) string
}

// Options is explicit context shared by builder and emitter.
type Options struct {
	Container      string
	Lang           language.Tag
	TagSet         TagSet
	Wiki           bool
	ForbiddenLinks []*regexp.Regexp
	WikiProviders  map[string]WikiProvider
}

// DefaultOptions returns options used when no configuration is available.
func DefaultOptions() *Options {
	return &Options{
		Container: DefaultContainer,
		Lang:      language.English,
		TagSet:    TagSetWiki,
	}
}

// NewOptions prepares options from configuration. Providers are created by
// the caller since their life time is longer than single document.
func NewOptions(cfg *config.MarkupConfig, providers map[string]WikiProvider) (*Options, error) {
	opts := DefaultOptions()
	if cfg == nil {
		return opts, nil
	}

	if cfg.Container != "" {
		opts.Container = cfg.Container
	}
	if cfg.Lang != "" {
		tag, err := language.Parse(cfg.Lang)
		if err != nil {
			return nil, fmt.Errorf("bad language %q: %w", cfg.Lang, err)
		}
		opts.Lang = tag
	}
	set, err := ParseTagSet(cfg.TagSet)
	if err != nil {
		return nil, err
	}
	opts.TagSet = set
	opts.Wiki = config.IsYes(cfg.Wiki.Enable)

	for _, pattern := range cfg.ForbiddenLinks {
		// patterns must match whole address
		re, err := regexp.Compile("^(?:" + pattern + ")$")
		if err != nil {
			return nil, fmt.Errorf("bad forbidden link pattern %q: %w", pattern, err)
		}
		opts.ForbiddenLinks = append(opts.ForbiddenLinks, re)
	}
	opts.WikiProviders = providers
	return opts, nil
}

// forbidden reports whether address matches any of forbidden patterns.
func (o *Options) forbidden(addr string) bool {
	for _, re := range o.ForbiddenLinks {
		if re.MatchString(addr) {
			return true
		}
	}
	return false
}

// provider returns wiki provider by name, empty name selects default one.
func (o *Options) provider(name string) (WikiProvider, bool) {
	p, ok := o.WikiProviders[name]
	return p, ok && p != nil
}
