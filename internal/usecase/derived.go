package usecase

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/juju/errors"

	"CovidDash/internal/domain"
)

// Open shows the document bound to a derived link in a new view. It fails
// with domain.ErrLinkDisabled until the parent action has bound a URL.
func (d *Dashboard) Open(id domain.ControlID) error {
	target, err := d.linkURL(id)
	if err != nil {
		return err
	}
	if d.opener == nil {
		return errors.NotSupportedf("opening %s", id)
	}
	d.logger.Debug("open link", "link", id, "url", target)
	return errors.Annotatef(d.opener.Open(target), "open %s", id)
}

// Download saves the document bound to a derived link into the download
// directory and returns the written path.
func (d *Dashboard) Download(ctx context.Context, id domain.ControlID) (string, error) {
	ref, ok := d.links.LinkTarget(id)
	if !ok {
		return "", domain.ErrLinkDisabled
	}
	if d.downloader == nil {
		return "", errors.NotSupportedf("downloading %s", id)
	}

	target, err := d.linkURL(id)
	if err != nil {
		return "", err
	}
	name := path.Base(target.Path)
	if name == "." || name == "/" || name == "" {
		name = string(id)
	}

	dir := d.settings.DownloadDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Annotatef(err, "create download dir")
	}
	dest := filepath.Join(dir, name)

	f, err := os.Create(dest)
	if err != nil {
		return "", errors.Annotatef(err, "create %s", dest)
	}
	if err := d.downloader.Download(ctx, ref, f); err != nil {
		_ = f.Close()
		_ = os.Remove(dest)
		return "", errors.Annotatef(err, "download %s", id)
	}
	if err := f.Close(); err != nil {
		return "", errors.Annotatef(err, "close %s", dest)
	}

	d.logger.Info("document downloaded", "link", id, "path", dest)
	return dest, nil
}

func (d *Dashboard) linkURL(id domain.ControlID) (*url.URL, error) {
	ref, ok := d.links.LinkTarget(id)
	if !ok {
		return nil, domain.ErrLinkDisabled
	}
	if d.resolver == nil {
		u, err := url.Parse(ref)
		return u, errors.Annotatef(err, "parse %s", ref)
	}
	return d.resolver.Resolve(ref)
}
