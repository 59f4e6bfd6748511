package usecase

import (
	"sync"

	"CovidDash/internal/domain"
)

type discard struct{}

func (discard) RenderTimeSeries(domain.ContainerID, []domain.SeriesRow, domain.SeriesField, domain.SeriesField, string) {
}

func (discard) RenderCommentList(domain.ContainerID, []domain.Comment) {}

func (discard) EmbedDocument(domain.ContainerID, string) {}

type blankInputs struct{}

func (blankInputs) Value(domain.FieldID) string { return "" }

func (blankInputs) Reset(...domain.FieldID) {}

type memoryLinks struct {
	mu      sync.Mutex
	targets map[domain.ControlID]string
}

func (m *memoryLinks) BindLink(id domain.ControlID, url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.targets == nil {
		m.targets = map[domain.ControlID]string{}
	}
	m.targets[id] = url
}

func (m *memoryLinks) LinkTarget(id domain.ControlID) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	url := m.targets[id]
	return url, url != ""
}
