package wiki

import (
	"fmt"
	"io"
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"fsc/config"
	"fsc/markup"
)

// Set holds wiki providers created from configuration together with
// resources they keep open.
type Set struct {
	providers map[string]markup.WikiProvider
	closers   []io.Closer
}

// FromConfig creates providers for every configured wiki. When no provider
// with empty name is configured and base_url is set, default static wiki with
// no page list is added.
func FromConfig(cfg *config.WikiConfig, log *zap.Logger) (s *Set, err error) {
	if log == nil {
		log = zap.NewNop()
	}

	s = &Set{providers: make(map[string]markup.WikiProvider)}
	defer func() {
		if err != nil {
			err = multierr.Append(err, s.Close())
			s = nil
		}
	}()

	if cfg == nil {
		return s, nil
	}

	for _, pc := range cfg.Providers {
		if _, exists := s.providers[pc.Name]; exists {
			return s, fmt.Errorf("duplicate wiki provider %q", pc.Name)
		}
		if len(pc.Index) == 0 {
			s.providers[pc.Name] = NewStatic(pc.BaseURL, pc.Pages)
			log.Debug("Wiki provider", zap.String("name", pc.Name), zap.String("url", pc.BaseURL), zap.Int("pages", len(pc.Pages)))
			continue
		}
		x, err := OpenIndex(pc.Index, pc.BaseURL, log)
		if err != nil {
			return s, err
		}
		s.closers = append(s.closers, x)
		if err := x.AddPages(pc.Pages...); err != nil {
			return s, err
		}
		s.providers[pc.Name] = x
		log.Debug("Wiki provider", zap.String("name", pc.Name), zap.String("url", pc.BaseURL), zap.String("index", pc.Index))
	}

	if _, exists := s.providers[""]; !exists && len(cfg.BaseURL) > 0 {
		s.providers[""] = NewStatic(cfg.BaseURL, nil)
	}
	return s, nil
}

// Providers returns providers by name, suitable for markup.Options.
func (s *Set) Providers() map[string]markup.WikiProvider {
	if s == nil {
		return nil
	}
	return s.providers
}

// Names returns sorted list of provider names.
func (s *Set) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.providers))
	for n := range s.providers {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func (s *Set) Close() (err error) {
	if s == nil {
		return nil
	}
	for _, c := range s.closers {
		err = multierr.Append(err, c.Close())
	}
	s.closers = nil
	return err
}
