package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmoreno/invitado/internal/links"
	"github.com/dmoreno/invitado/internal/renderer"
)

// pageData feeds the invitation template: the projected configuration plus
// the personalization carried by the invitation link.
type pageData struct {
	P   *renderer.Projection
	Inv links.Invitation
}

func (s *Server) handleInvitationPage(c *gin.Context) {
	data := pageData{
		P:   renderer.Project(s.store.GetState()),
		Inv: links.ParseInvitation(c.Request.URL.Query()),
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(c.Writer, data); err != nil {
		s.log.Error("invitation page render failed", "error", err)
	}
}

const pageTemplate = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.P.Subject}}</title>
</head>
<body data-event-date="{{.P.DateValue}}">
<header class="hero">
  <h1>{{.P.HostNames}}</h1>
  <p class="hero-date">{{.P.HeroDate}}</p>
  {{if .P.PhotoURL}}<img class="hero-photo" src="{{.P.PhotoURL}}" alt="">{{end}}
</header>

{{if .Inv.Guest}}<section class="welcome"><h2>{{.Inv.Guest}}</h2></section>
{{else if .P.GuestWelcome}}<section class="welcome"><h2>{{.P.GuestWelcome}}</h2></section>{{end}}

<section class="message">
  <p>{{.P.Message}}</p>
  <p class="display-date">{{.P.DisplayDate}}</p>
</section>

{{if .P.ShowCountdown}}
<section class="countdown" data-target="{{.P.DateValue}}">
  <span id="days"></span><span id="hours"></span><span id="minutes"></span><span id="seconds"></span>
</section>
{{end}}

<section class="location">
  {{if .P.LocationPhysical}}<p>{{.P.LocationPhysical}}</p>{{end}}
  {{if .P.LocationVirtual}}<p><a href="{{.P.LocationVirtual}}">Enlace virtual</a></p>{{end}}
  {{if .P.CalendarURL}}<a class="calendar" href="{{.P.CalendarURL}}">Agregar al calendario</a>{{end}}
</section>

{{if .P.ShowLogistics}}
<section class="logistics">
  {{if .P.ShowDressCode}}
  <div class="dress-code">
    <h3>{{.P.DressCodeTitle}}</h3>
    <p>{{.P.DressCodeDescription}}</p>
    {{if .P.DressCodeTip}}<p class="tip">{{.P.DressCodeTip}}</p>{{end}}
  </div>
  {{end}}
  {{if .P.ShowGifts}}
  <div class="gifts">
    <h3>{{.P.GiftsTitle}}</h3>
    <p>{{.P.GiftsDescription}}</p>
    {{if .P.ShowRegistryButton}}<a href="{{.P.RegistryURL}}">Mesa de regalos</a>{{end}}
    {{if .P.ShowBankButton}}<details><summary>Transferencia</summary><p>{{.P.BankDetails}}</p></details>{{end}}
  </div>
  {{end}}
</section>
{{end}}

{{if .P.Timeline}}
<section class="timeline" data-align="{{.P.TimelineAlign}}">
  {{range .P.Timeline}}
  <div class="timeline-item">
    <i class="{{.Icon}}" style="color: {{.Color}}"></i>
    <span class="time">{{.Time}}</span>
    <span class="activity">{{.Activity}}</span>
  </div>
  {{end}}
</section>
{{end}}

<section class="rsvp">
  <h2>{{.P.RSVPTitle}}</h2>
  {{if .P.RSVPDescription}}<p>{{.P.RSVPDescription}}</p>{{end}}
  <form id="rsvp-form" data-guest="{{.Inv.ID}}">
    {{if .P.ShowAdults}}<label>Adultos
      <select name="adults">{{range .Inv.AdultOptions}}<option>{{.}}</option>{{end}}</select>
    </label>{{end}}
    {{if .P.ShowKids}}<label>Niños
      <select name="kids">{{range .Inv.KidOptions}}<option>{{.}}</option>{{end}}</select>
    </label>{{end}}
    {{if .P.ShowAllergies}}<label>Alergias o notas<input name="allergies"></label>{{end}}
    <button type="submit" name="attending" value="yes">{{.P.ConfirmYesTitle}}</button>
    <button type="submit" name="attending" value="no">{{.P.ConfirmNoTitle}}</button>
  </form>
</section>
</body>
</html>`
