package convert

import (
	"strings"
	"testing"

	"fsc/config"
)

func TestExpandTemplate(t *testing.T) {
	c := setupTestContentForPath(t, "forum/topic/post.fsc", "<fscode><title>Hello  World</title></fscode>")

	tests := []struct {
		name     string
		template string
		want     string
		wantErr  bool
	}{
		{"name", "{{ .Name }}", "post", false},
		{"dir", "{{ .Dir }}", "forum/topic", false},
		{"title", "{{ .Title }}", "Hello World", false},
		{"id", "{{ .ID }}", "test-doc-id", false},
		{"lang", "{{ .Lang }}", "en", false},
		{"context", "{{ .Context }}", "name_template", false},
		{"sprig", `{{ .Title | lower | replace " " "_" }}`, "hello_world", false},
		{"unknown field", `{{ .Missing | default "x" }}`, "", true},
		{"parse error", "{{ .Name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandTemplate(c, config.OutputNameTemplateFieldName, tt.template)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expandTemplate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("expandTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildValues_TopLevelSource(t *testing.T) {
	c := &Content{SrcName: "post.fsc"}
	v := buildValues(c, config.OutputNameTemplateFieldName)
	if v.Dir != "" || v.Name != "post" || v.Title != "" || v.ID != "" {
		t.Errorf("unexpected values %+v", v)
	}

	_, err := expandTemplate(c, config.OutputNameTemplateFieldName, "{{ index .Name 99 }}")
	if err == nil || !strings.Contains(err.Error(), "index") {
		t.Errorf("expected template failure, got %v", err)
	}
}
