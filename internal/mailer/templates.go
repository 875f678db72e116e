// AngelaMos | 2026
// templates.go

package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var passwordResetTmpl = template.Must(template.New("reset").Parse(`
<h1>Reset Your Password</h1>
<p>Click the button below to reset your password:</p>
<a href="{{.Link}}" style="background-color:#4CAF50;color:white;padding:10px 20px;text-decoration:none;">Reset Password</a>
<p>This link will expire in {{.Minutes}} minutes.</p>
`))

var downloadsTmpl = template.Must(template.New("downloads").Parse(`
<h2>Thank you for your purchase!</h2>
<p>Here {{if eq (len .) 1}}is your download link{{else}}are your download links{{end}}:</p>
<ul>
{{range .}}  <li><a href="{{.URL}}">{{.Name}}</a></li>
{{end}}</ul>
`))

type Download struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func PasswordReset(to, link string, minutes int) (Message, error) {
	var buf bytes.Buffer
	err := passwordResetTmpl.Execute(&buf, struct {
		Link    string
		Minutes int
	}{link, minutes})
	if err != nil {
		return Message{}, fmt.Errorf("render reset mail: %w", err)
	}

	return Message{
		To:          []Recipient{{Email: to}},
		Subject:     "Reset Your Password",
		HTMLContent: buf.String(),
	}, nil
}

func DownloadLinks(to string, downloads []Download) (Message, error) {
	if len(downloads) == 0 {
		return Message{}, fmt.Errorf("render downloads mail: no downloads")
	}

	var buf bytes.Buffer
	if err := downloadsTmpl.Execute(&buf, downloads); err != nil {
		return Message{}, fmt.Errorf("render downloads mail: %w", err)
	}

	return Message{
		To:          []Recipient{{Email: to}},
		Subject:     "Your Digital Product Download",
		HTMLContent: buf.String(),
	}, nil
}

func Templated(to string, templateID int64, params map[string]any) Message {
	return Message{
		To:         []Recipient{{Email: to}},
		TemplateID: templateID,
		Params:     params,
	}
}
