package renderer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmoreno/invitado/internal/models"
)

func TestProjectDefaults(t *testing.T) {
	p := Project(models.Default())

	if p.Subject != DefaultSubject {
		t.Errorf("subject = %q, want %q", p.Subject, DefaultSubject)
	}
	if p.RSVPTitle != DefaultRSVPTitle {
		t.Errorf("rsvp title = %q, want %q", p.RSVPTitle, DefaultRSVPTitle)
	}
	if p.ConfirmYesTitle != DefaultConfirmYes || p.ConfirmNoTitle != DefaultConfirmNo {
		t.Errorf("confirmation titles = %q / %q", p.ConfirmYesTitle, p.ConfirmNoTitle)
	}
	if p.DressCodeTitle != DefaultDressCodeTitle {
		t.Errorf("dress code title = %q", p.DressCodeTitle)
	}
	if p.GiftsTitle != DefaultGiftsTitle {
		t.Errorf("gifts title = %q", p.GiftsTitle)
	}
	if !p.ShowCountdown || !p.ShowAdults || !p.ShowKids || !p.ShowAllergies {
		t.Error("unset show flags must default to visible")
	}
}

func TestProjectLogisticsVisibility(t *testing.T) {
	tests := []struct {
		name      string
		dressCode *bool
		gifts     *bool
		want      bool
	}{
		{"both unset", nil, nil, true},
		{"dress code hidden, gifts visible", models.Bool(false), nil, true},
		{"dress code visible, gifts hidden", nil, models.Bool(false), true},
		{"both hidden", models.Bool(false), models.Bool(false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := models.Default()
			cfg.Wedding.DressCode.Show = tt.dressCode
			cfg.Wedding.Gifts.Show = tt.gifts

			if got := Project(cfg).ShowLogistics; got != tt.want {
				t.Errorf("ShowLogistics = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProjectGiftButtons(t *testing.T) {
	cfg := models.Default()
	cfg.Wedding.Gifts.RegistryButton.URL = "https://registry.example"
	cfg.Wedding.Gifts.BankButton.Show = models.Bool(true)
	// bank details intentionally empty

	p := Project(cfg)
	if !p.ShowRegistryButton {
		t.Error("registry button with url should show")
	}
	if p.ShowBankButton {
		t.Error("bank button without details should hide")
	}

	cfg.Wedding.Gifts.RegistryButton.Show = models.Bool(false)
	if Project(cfg).ShowRegistryButton {
		t.Error("registry button with show=false should hide despite url")
	}
}

func TestProjectPlaceholderPhoto(t *testing.T) {
	cfg := models.Default()
	cfg.Wedding.Photo = "https://placehold.co/600x400"
	if got := Project(cfg).PhotoURL; got != "" {
		t.Errorf("placeholder photo leaked into projection: %q", got)
	}

	cfg.Wedding.Photo = "data:image/jpeg;base64,QUJDREVGRw=="
	if got := Project(cfg).PhotoURL; got == "" {
		t.Error("real photo was dropped")
	}
}

func TestProjectTimelineRebuild(t *testing.T) {
	cfg := models.Default()
	cfg.UI.IconColor = "#abcdef"
	cfg.Timeline = []models.TimelineEntry{
		{Time: "19:30", Activity: "Ceremonia", Icon: "fa-church"},
		{Time: "21:00", Activity: "Cena", Icon: "fa-utensils"},
	}

	p := Project(cfg)
	if len(p.Timeline) != 2 {
		t.Fatalf("timeline has %d rows, want 2", len(p.Timeline))
	}
	if p.Timeline[0].Activity != "Ceremonia" || p.Timeline[1].Activity != "Cena" {
		t.Errorf("timeline order lost: %+v", p.Timeline)
	}
	if p.Timeline[0].Color != "#abcdef" {
		t.Errorf("icon tint = %q", p.Timeline[0].Color)
	}

	// A second projection with a shorter timeline fully replaces the rows.
	cfg.Timeline = cfg.Timeline[:1]
	if got := len(Project(cfg).Timeline); got != 1 {
		t.Errorf("rebuilt timeline has %d rows, want 1", got)
	}
}

func TestRemainingUntil(t *testing.T) {
	now := time.Date(2026, 3, 13, 19, 30, 0, 0, time.UTC)

	t.Run("future target", func(t *testing.T) {
		got := RemainingUntil(now.Add(49*time.Hour+30*time.Minute+5*time.Second), now)
		want := Remaining{Days: 2, Hours: 1, Minutes: 30, Seconds: 5}
		if got != want {
			t.Errorf("remaining = %+v, want %+v", got, want)
		}
	})

	t.Run("past target clamps to zero", func(t *testing.T) {
		if got := RemainingUntil(now.Add(-time.Hour), now); got != (Remaining{}) {
			t.Errorf("remaining = %+v, want zeros", got)
		}
	})
}

func TestCountdownRearm(t *testing.T) {
	c := NewCountdown()
	defer c.Stop()

	target := time.Now().Add(time.Hour)

	var firstTicks, secondTicks atomic.Int32
	c.Arm(target, func(Remaining) { firstTicks.Add(1) })
	c.Arm(target, func(Remaining) { secondTicks.Add(1) })

	// Both callbacks fired once synchronously on arm; from here only the
	// second countdown's goroutine may tick.
	if got := firstTicks.Load(); got != 1 {
		t.Errorf("first callback ran %d times at arm, want 1", got)
	}
	if got := secondTicks.Load(); got != 1 {
		t.Errorf("second callback ran %d times at arm, want 1", got)
	}

	time.Sleep(1500 * time.Millisecond)
	if got := firstTicks.Load(); got != 1 {
		t.Errorf("cancelled countdown kept ticking: %d", got)
	}
	if got := secondTicks.Load(); got < 2 {
		t.Errorf("active countdown never ticked: %d", got)
	}
}
