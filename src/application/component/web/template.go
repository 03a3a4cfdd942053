package web

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"path"
	"strconv"
	"sync"
	"time"

	"github.com/staffdesk/staffdesk/src/domain"
)

//go:embed templates
var templatesFs embed.FS

//go:embed static
var staticFs embed.FS

var layout *template.Template

var templates = struct {
	sync.Mutex
	byRoute map[string]*template.Template
}{byRoute: map[string]*template.Template{}}

func init() {
	tmpl, err := templatesFs.ReadFile("templates/layout.html")
	if err != nil {
		log.Panic(err)
	}
	layout = template.Must(template.New("layout.html").Funcs(templateFuncs).Parse(string(tmpl)))
}

func loadTemplate(route string) (*template.Template, error) {
	templates.Lock()
	defer templates.Unlock()

	if found, ok := templates.byRoute[route]; ok {
		return found, nil
	}

	clone, err := layout.Clone()
	if err != nil {
		return nil, err
	}
	source, err := templatesFs.ReadFile(path.Join("templates", route))
	if err != nil {
		return nil, err
	}

	parsed, err := clone.New(route).Parse(string(source))
	if err != nil {
		return nil, err
	}
	templates.byRoute[route] = parsed

	return parsed, nil
}

func (self *Web) render(route string, w http.ResponseWriter, status int, data map[string]any) error {
	tmpl, err := loadTemplate(route)
	if err != nil {
		http.Error(w, msgInternal, http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return tmpl.Execute(w, data)
}

var templateFuncs = template.FuncMap{
	"buildInfo": func() domain.BuildInfo {
		return domain.Build
	},
	"money": func(amount float64) string {
		return groupThousands(fmt.Sprintf("%.2f", amount))
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("2006-01-02 15:04")
	},
	"salaryValue": func(s domain.Salary) string {
		return s.String()
	},
	"missing": func(m *domain.MissingFieldsError, field string) bool {
		return m.Has(field)
	},
	"timeNow": time.Now,
}

// groupThousands inserts commas into the integer part of a formatted number.
func groupThousands(num string) string {
	intPart, frac := num, ""
	for i := range num {
		if num[i] == '.' {
			intPart, frac = num[:i], num[i:]
			break
		}
	}

	sign := ""
	if len(intPart) > 0 && intPart[0] == '-' {
		sign, intPart = "-", intPart[1:]
	}

	if _, err := strconv.Atoi(intPart); err != nil || len(intPart) <= 3 {
		return sign + intPart + frac
	}

	grouped := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, intPart[i])
	}
	return sign + string(grouped) + frac
}
