package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/spf13/viper"
)

type EmailOutbound struct {
	Cfg *viper.Viper

	auth smtp.Auth
	addr string
	from string
}

func (out *EmailOutbound) Init() {
	out.from = out.Cfg.GetString("email.user")
	out.addr = fmt.Sprintf("%s:%d", out.Cfg.GetString("email.host"), out.Cfg.GetInt("email.port"))
	out.auth = smtp.CRAMMD5Auth(out.Cfg.GetString("email.user"), out.Cfg.GetString("email.password"))
}

func (out *EmailOutbound) Send(to []string, subject string, body string) error {
	message := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		out.from,
		strings.Join(to, ","),
		subject,
		body,
	))

	return smtp.SendMail(out.addr, out.auth, out.from, to, message)
}
