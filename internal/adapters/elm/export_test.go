package elm

// NewLocatorWithLookPath creates a Locator with a custom PATH lookup.
func NewLocatorWithLookPath(lookPath func(string) (string, error)) *Locator {
	return &Locator{lookPath: lookPath}
}
