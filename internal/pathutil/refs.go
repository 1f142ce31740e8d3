package pathutil

// ComponentsRefPrefix starts every local component reference.
const ComponentsRefPrefix = "#/components/"

// ComponentRef builds "#/components/{typ}/{name}".
func ComponentRef(typ, name string) string {
	return ComponentsRefPrefix + typ + "/" + name
}
