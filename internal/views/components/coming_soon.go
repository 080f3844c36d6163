package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// placeholderTab is a tab with optional sub-tabs that holds no lead data.
type placeholderTab struct {
	title string
	subs  []string
}

var placeholderTabs = []placeholderTab{
	{title: "Calendar"},
	{title: "Calls"},
	{title: "Email", subs: []string{"Gmail", "SMTP"}},
	{title: "Messaging", subs: []string{"Twilio"}},
	{title: "Forms", subs: []string{"My Forms", "Create", "Embed", "Settings"}},
	{title: "Integrations"},
	{title: "Settings"},
}

// PlaceholderTabs builds the "coming soon" tabs shown beside Leads.
func PlaceholderTabs() []*container.TabItem {
	items := make([]*container.TabItem, 0, len(placeholderTabs))
	for _, p := range placeholderTabs {
		items = append(items, container.NewTabItem(p.title, placeholderContent(p)))
	}
	return items
}

func placeholderContent(p placeholderTab) fyne.CanvasObject {
	if len(p.subs) == 0 {
		return comingSoon(p.title)
	}
	subs := make([]*container.TabItem, len(p.subs))
	for i, name := range p.subs {
		subs[i] = container.NewTabItem(name, comingSoon(p.title+" / "+name))
	}
	return container.NewAppTabs(subs...)
}

func comingSoon(name string) fyne.CanvasObject {
	return container.NewCenter(widget.NewLabel(name + ": coming soon"))
}
