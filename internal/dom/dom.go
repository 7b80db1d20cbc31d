// Package dom is the small capability interface the paint engine uses to
// reach the host page and its embedded map documents. Hosts (the HTML
// renderer, the browser binding, test fakes) implement it; the engine never
// touches a concrete DOM.
package dom

import "strings"

// Attribute names and prefixes shared by every host.
const (
	ContainerIDPrefix = "map-"
	MapTypeAttr       = "data-map-type"
	ActiveClass       = "active"
)

// Element is a node whose attributes can be read and written.
type Element interface {
	ID() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
}

// Document is a loaded vector document.
type Document interface {
	// MarkableElements returns every element that can carry a tier marking.
	MarkableElements() []Element

	// ElementByID returns the first element with the given id.
	ElementByID(id string) (Element, bool)

	// ElementsWithClass returns every element, markable or not, whose class
	// list contains class.
	ElementsWithClass(class string) []Element
}

// Resource is an embedded vector resource (an <object> in the page).
type Resource interface {
	// Document returns the resource's document once it has fully loaded.
	Document() (Document, bool)
}

// Container holds one map's resource and is shown when its map is active.
type Container interface {
	Element
	Resource() (Resource, bool)
}

// Page is the host page: map containers, selector controls and the element
// carrying the ambient background.
type Page interface {
	MapContainer(mapType string) (Container, bool)
	Containers() []Container
	Controls() []Element
	Backdrop() (Element, bool)
}

// ContainerID returns the element id of mapType's container.
func ContainerID(mapType string) string {
	return ContainerIDPrefix + mapType
}

// ContainerMapType extracts the map type from a container id, or "" if the
// id does not follow the container naming scheme.
func ContainerMapType(c Element) string {
	id := c.ID()
	if !strings.HasPrefix(id, ContainerIDPrefix) {
		return ""
	}
	return strings.TrimPrefix(id, ContainerIDPrefix)
}

// ControlMapType returns the map type a selector control activates.
func ControlMapType(c Element) string {
	v, _ := c.Attr(MapTypeAttr)
	return strings.TrimSpace(v)
}
