package handler

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"sync"

	"github.com/labstack/echo/v4"
)

// TemplateRenderer はパース済みテンプレートのキャッシュ。
// echo.Rendererとして登録する。
type TemplateRenderer struct {
	cache map[string]*template.Template
	mu    sync.RWMutex
	funcs template.FuncMap
}

func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{
		cache: make(map[string]*template.Template),
		funcs: template.FuncMap{
			// centsを"12.34"表記へ
			"price": func(cents int64) string {
				return fmt.Sprintf("%.2f", float64(cents)/100)
			},
		},
	}
}

func (t *TemplateRenderer) AddFunc(name string, fn interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.funcs[name] = fn
}

// Load はdir直下の*.htmlを全てパースしてキャッシュする
func (t *TemplateRenderer) Load(dir string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	files, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return err
	}

	for _, file := range files {
		name := filepath.Base(file)
		tmpl, err := template.New(name).Funcs(t.funcs).ParseFiles(file)
		if err != nil {
			return err
		}
		t.cache[name] = tmpl
	}

	return nil
}

// Render はecho.Rendererの実装
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t.mu.RLock()
	tmpl, ok := t.cache[name]
	t.mu.RUnlock()

	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}

	return tmpl.Execute(w, data)
}
