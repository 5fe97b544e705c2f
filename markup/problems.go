package markup

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// ProblemKey identifies kind of nonfatal issue, it doubles as message key in
// localization catalog.
type ProblemKey string

const (
	ProblemBadAlign        ProblemKey = "bad-align"
	ProblemBadDimension    ProblemKey = "bad-dimension"
	ProblemBadDimensionSfx ProblemKey = "bad-dimension-suffix"
	ProblemBadMargin       ProblemKey = "bad-margin"
	ProblemBadNumber       ProblemKey = "bad-number"
	ProblemWidePercentage  ProblemKey = "wide-percentage"
	ProblemForbiddenURL    ProblemKey = "forbidden-url"
	ProblemMissingURL      ProblemKey = "missing-url"
	ProblemDuplicateTitle  ProblemKey = "duplicate-title"
	ProblemEmptyTOC        ProblemKey = "empty-toc"
	ProblemUnknownWiki     ProblemKey = "unknown-wiki"
	ProblemMissingPage     ProblemKey = "missing-page"
)

// Keys of non-problem texts produced by emission.
const (
	msgTOCCaption = "toc-caption"
	msgTOCTop     = "toc-return-to-top"
)

// Problem is a single nonfatal issue found while building or emitting the
// tree. It is always attached to the tree root.
type Problem struct {
	Source  Node // may be nil
	Key     ProblemKey
	Message string
}

func (p Problem) String() string {
	if tag := tagOf(p.Source); tag != "" {
		return fmt.Sprintf("<%s>: %s", tag, p.Message)
	}
	return p.Message
}

func tagOf(n Node) string {
	if t, ok := n.(interface{ Tag() string }); ok {
		return t.Tag()
	}
	return ""
}

// Report records problem against the root of the tree n belongs to. When n is
// not attached to a Document the problem is dropped.
func Report(n Node, key ProblemKey, args ...any) {
	if doc := documentOf(n); doc != nil {
		doc.report(n, key, args...)
	}
}

// reportOnce records problem unless the same node already reported the same
// key. Used from emission which could be invoked repeatedly.
func reportOnce(n Node, key ProblemKey, args ...any) {
	if doc := documentOf(n); doc != nil {
		for _, p := range doc.problems {
			if p.Source == n && p.Key == key {
				return
			}
		}
		doc.report(n, key, args...)
	}
}

type entry struct {
	en, ru string
}

var texts = map[string]entry{
	string(ProblemBadAlign): {
		en: "unsupported %s value %q, using %q",
		ru: "неподдерживаемое значение %s %q, используется %q",
	},
	string(ProblemBadDimension): {
		en: "%s value %q is not a valid size, using 0",
		ru: "значение %s %q не является размером, используется 0",
	},
	string(ProblemBadDimensionSfx): {
		en: "%s value %q has unknown unit, using 100%%",
		ru: "значение %s %q содержит неизвестную единицу измерения, используется 100%%",
	},
	string(ProblemBadMargin): {
		en: "%s value %q is not a valid margin, using 0",
		ru: "значение %s %q не является отступом, используется 0",
	},
	string(ProblemBadNumber): {
		en: "%s value %q is not valid, using %d",
		ru: "значение %s %q недопустимо, используется %d",
	},
	string(ProblemWidePercentage): {
		en: "%s value %q exceeds 100%%",
		ru: "значение %s %q превышает 100%%",
	},
	string(ProblemForbiddenURL): {
		en: "address %q is not allowed",
		ru: "адрес %q запрещён",
	},
	string(ProblemMissingURL): {
		en: "required attribute %s is missing",
		ru: "отсутствует обязательный атрибут %s",
	},
	string(ProblemDuplicateTitle): {
		en: "document already has a title, ignoring",
		ru: "у документа уже есть заголовок, пропускаем",
	},
	string(ProblemEmptyTOC): {
		en: "table of contents is empty",
		ru: "оглавление пусто",
	},
	string(ProblemUnknownWiki): {
		en: "unknown wiki %q",
		ru: "неизвестная вики %q",
	},
	string(ProblemMissingPage): {
		en: "wiki page is not specified",
		ru: "не указана страница вики",
	},
	msgTOCCaption: {
		en: "Table of Contents",
		ru: "Оглавление",
	},
	msgTOCTop: {
		en: "return to top",
		ru: "в начало",
	},
}

// messages is shared localization catalog. English is used for any language
// without translation.
var messages = func() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, e := range texts {
		if err := b.SetString(language.English, key, e.en); err != nil {
			panic(fmt.Sprintf("bad catalog entry %q: %v", key, err))
		}
		if err := b.SetString(language.Russian, key, e.ru); err != nil {
			panic(fmt.Sprintf("bad catalog entry %q: %v", key, err))
		}
	}
	return b
}()

// newPrinter returns message printer for requested language.
func newPrinter(lang language.Tag) *message.Printer {
	langs := messages.Languages()
	_, idx, _ := language.NewMatcher(langs).Match(lang)
	return message.NewPrinter(langs[idx], message.Catalog(messages))
}
