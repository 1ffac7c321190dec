package api

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"

	"github.com/hpungsan/sift/internal/errors"
)

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderError writes the error envelope for err. Internal errors are logged
// with their cause and reported to the client without details.
func renderError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	sErr := errors.As(err)

	body := map[string]any{
		"code":    string(sErr.Code),
		"message": sErr.Message,
		"status":  sErr.Status,
	}
	if sErr.Code == errors.ErrInternal {
		if log != nil {
			log.Error("internal error",
				zap.String("request_id", RequestIDFrom(r.Context())),
				zap.Any("details", sErr.Details),
			)
		}
	} else if len(sErr.Details) > 0 {
		body["details"] = sErr.Details
	}

	renderJSON(w, sErr.Status, map[string]any{"error": body})
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Sift API {{.Version}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; }
code, pre { background: #f4f4f4; border-radius: 3px; }
pre { padding: .75rem; overflow-x: auto; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: .25rem .5rem; text-align: left; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`

var page = template.Must(template.New("page").Parse(pageTemplate))

// renderMarkdownPage converts a markdown document to a standalone HTML page.
func renderMarkdownPage(md []byte, version string) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert(md, &body); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	err := page.Execute(&out, struct {
		Version string
		Body    template.HTML
	}{version, template.HTML(body.String())})
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
