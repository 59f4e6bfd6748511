package browser

import (
	"log/slog"
	"net/url"

	"github.com/juju/errors"
	"github.com/juju/webbrowser"

	"CovidDash/internal/ports"
)

// Opener shows derived documents in the system web browser.
type Opener struct {
	open   func(*url.URL) error
	logger *slog.Logger
}

var _ ports.Opener = (*Opener)(nil)

// NewOpener returns an opener backed by the platform browser launcher.
func NewOpener(logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Opener{open: webbrowser.Open, logger: logger}
}

// Open launches the browser on u.
func (o *Opener) Open(u *url.URL) error {
	if u == nil {
		return errors.NotValidf("empty url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.NotValidf("url %q", u.String())
	}

	o.logger.Debug("launching browser", "url", u.String())
	err := o.open(u)
	if errors.Is(err, webbrowser.ErrNoBrowser) {
		return errors.NotFoundf("browser to open %s", u.String())
	}
	return errors.Annotatef(err, "open %s", u.String())
}
