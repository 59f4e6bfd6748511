package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit         key.Binding
	Next         key.Binding
	Prev         key.Binding
	Submit       key.Binding
	LoadRegion   key.Binding
	LoadNational key.Binding
	Post         key.Binding
	Refresh      key.Binding
	EDA          key.Binding
	Forecast     key.Binding
	OpenCases    key.Binding
	OpenDeaths   key.Binding
	DownloadCSV  key.Binding
	OpenForecast key.Binding
	Preview      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:         key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		Next:         key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:         key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Submit:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run field action")),
		LoadRegion:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "state")),
		LoadNational: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "USA")),
		Post:         key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "post")),
		Refresh:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "comments")),
		EDA:          key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "EDA")),
		Forecast:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "forecast")),
		OpenCases:    key.NewBinding(key.WithKeys("alt+1"), key.WithHelp("alt+1", "open cases")),
		OpenDeaths:   key.NewBinding(key.WithKeys("alt+2"), key.WithHelp("alt+2", "open deaths")),
		DownloadCSV:  key.NewBinding(key.WithKeys("alt+3"), key.WithHelp("alt+3", "save csv")),
		OpenForecast: key.NewBinding(key.WithKeys("alt+4"), key.WithHelp("alt+4", "open forecast")),
		Preview:      key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "preview")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.LoadNational, k.Refresh, k.EDA, k.Forecast, k.Preview, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Submit, k.Quit},
		{k.LoadRegion, k.LoadNational, k.Post, k.Refresh, k.EDA, k.Forecast},
		{k.OpenCases, k.OpenDeaths, k.DownloadCSV, k.OpenForecast, k.Preview},
	}
}
