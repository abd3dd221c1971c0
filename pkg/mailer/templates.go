package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"
)

var subjects = map[string]string{
	TemplateWelcome:           "Welcome to ShopSpot",
	TemplateOrderConfirmation: "Your ShopSpot order confirmation",
}

var htmlTemplates = template.Must(template.New("emails").Parse(`
{{define "welcome"}}
<p>Hi {{.Name}},</p>
<p>Your ShopSpot account is ready. You can sign in with {{.Email}} any time.</p>
<p>Happy shopping!</p>
{{end}}

{{define "order_confirmation"}}
<p>Hi {{.Name}},</p>
<p>We received your payment of {{.Total}} and your order <b>{{.OrderID}}</b> is now being processed.</p>
<p>You can track its status from your account page.</p>
{{end}}
`))

var textTemplates = texttemplate.Must(texttemplate.New("emails").Parse(`
{{define "welcome"}}Hi {{.Name}},

Your ShopSpot account is ready. You can sign in with {{.Email}} any time.

Happy shopping!
{{end}}

{{define "order_confirmation"}}Hi {{.Name}},

We received your payment of {{.Total}} and your order {{.OrderID}} is now being processed.

You can track its status from your account page.
{{end}}
`))

// Render produces subject, text and html bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	var tb, hb bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&tb, name, data); err != nil {
		return "", "", "", err
	}
	if err := htmlTemplates.ExecuteTemplate(&hb, name, data); err != nil {
		return "", "", "", err
	}
	return subject, tb.String(), hb.String(), nil
}
