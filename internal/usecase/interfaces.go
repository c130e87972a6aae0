package usecase

// SystemMessageCatalog resolves a translation key plus positional arguments
// to localized text. Unknown keys render as the key itself.
type SystemMessageCatalog interface {
	Resolve(key string, args []string, locale string) string
}
