package webui

import (
	"fmt"
	"html/template"
)

type templator struct {
	cfg  *Config
	tmpl map[string]*template.Template
}

func newTemplator(cfg *Config) *templator {
	return &templator{
		cfg:  cfg,
		tmpl: make(map[string]*template.Template),
	}
}

func (t *templator) makeFuncs() template.FuncMap {
	return template.FuncMap{
		"asURL": func(s string) string {
			return t.cfg.prefix + s
		},
		"asStaticURL": func(s string) string {
			return t.cfg.prefix + s + "?" + t.cfg.ServerID
		},
	}
}

func (t *templator) Add(key string, names ...string) error {
	files := make([]string, 0, len(names)+1)
	files = append(files, "template/base.html")
	for _, n := range names {
		files = append(files, fmt.Sprintf("template/%v.html", n))
	}
	if _, ok := t.tmpl[key]; ok {
		return fmt.Errorf("template %v already exists", key)
	}
	tmpl, err := template.New(key).Funcs(t.makeFuncs()).ParseFS(templates, files...)
	if err != nil {
		return fmt.Errorf("template %v parse: %w", key, err)
	}
	t.tmpl[key] = tmpl
	return nil
}

func (t *templator) Get(key string) (*template.Template, error) {
	tmpl, ok := t.tmpl[key]
	if !ok {
		return nil, fmt.Errorf("template %v not found", key)
	}
	return tmpl, nil
}

func (t *templator) addAll() error {
	for key, names := range map[string][]string{
		"viewer": {"viewer", "part/board"},
		"error":  {"error"},
	} {
		if err := t.Add(key, names...); err != nil {
			return err
		}
	}
	return nil
}
