package configs

// Configurable values know the config path they are decoded from.
type Configurable interface {
	ConfigExpr() string
}

// Resolve decodes the first value at the path named by T.
func Resolve[T Configurable](loader Loader) T {
	var zero T
	return First[T](loader, zero.ConfigExpr())
}
