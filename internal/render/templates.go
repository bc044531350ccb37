package render

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

// stylesheet is the compiled-in inline CSS spec.md §4.5 calls for ("HTML
// responses are UTF-8 with inline CSS from a compiled-in stylesheet").
const stylesheet = `
body { font-family: sans-serif; background: #111; color: #eee; margin: 2em; }
a { color: #7ab8ff; }
table { border-collapse: collapse; width: 100%; }
td, th { padding: 4px 8px; border-bottom: 1px solid #333; text-align: left; }
.latest { font-weight: bold; }
img.attachment { max-width: 320px; max-height: 320px; }
`

var (
	rosterTemplate   = template.Must(template.New("roster").Parse(rosterHTML))
	dayIndexTemplate = template.Must(template.New("dayindex").Parse(dayIndexHTML))
	dayViewTemplate  = template.Must(template.New("dayview").Parse(dayViewHTML))
)

const rosterHTML = `<!doctype html>
<html><head><title>chatvault</title><style>` + stylesheet + `</style></head>
<body>
<h1>chats</h1>
<ul>
{{range .Entries}}<li><a href="/chat/{{.ChatID}}">{{.DisplayName}}</a></li>
{{end}}
</ul>
</body></html>`

const dayIndexHTML = `<!doctype html>
<html><head><title>chatvault</title><style>` + stylesheet + `</style></head>
<body>
<h1>chat {{.ChatID}}</h1>
<ul>
{{range .Entries}}<li><a href="/chat/{{$.ChatID}}/{{.Label}}"{{if .Latest}} class="latest"{{end}}>{{.Label}}{{if .Latest}} (latest){{end}}</a></li>
{{end}}
</ul>
</body></html>`

const dayViewHTML = `<!doctype html>
<html><head><title>chatvault</title><style>` + stylesheet + `</style></head>
<body>
<h1>chat {{.ChatID}} — {{.Day}}</h1>
<div class="navigation">
<span class="title">{{.ChatID}} - {{.Day}}</span> |
{{if .Prev.HasLink}}<a href="{{.Prev.URL}}">{{.Prev.Label}}</a>{{else}}<span class="nolink">{{.Prev.Label}} (none)</span>{{end}} |
{{if .Next.HasLink}}<a href="{{.Next.URL}}">{{.Next.Label}}</a>{{else}}<span class="nolink">{{.Next.Label}} (none)</span>{{end}} |
{{if .Latest.HasLink}}<a href="{{.Latest.URL}}">{{.Latest.Label}}</a>{{else}}<span class="nolink">{{.Latest.Label}} (none)</span>{{end}}
</div>
<table>
{{range .Rows}}<tr>
<td>{{.Time}}</td>
<td>{{.UserDisplay}}</td>
<td>
{{if eq (printf "%v" .Kind) "Message"}}{{.Text}}
{{else if eq (printf "%v" .Kind) "Media"}}{{.Caption}}{{if .ImageURL}}<br><img class="attachment" src="{{.ImageURL}}">{{end}}
{{else if eq (printf "%v" .Kind) "Membership"}}{{.UserDisplay}} {{.Membership}}
{{end}}
</td>
</tr>
{{end}}
</table>
</body></html>`

func renderHTML(c *gin.Context, tmpl *template.Template, data gin.H) {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(c.Writer, data); err != nil {
		c.String(http.StatusInternalServerError, "template error")
	}
}

func wantsJSON(c *gin.Context) bool {
	return c.Query("format") == "json" || c.GetHeader("Accept") == "application/json"
}
