package repository

// Rebind exposes placeholder rewriting to the external test package.
func Rebind(r *PortfolioRepository, query string) string {
	return r.rebind(query)
}
