package leads

// Stats are the dashboard counters
type Stats struct {
	Total       int `json:"total"`
	Nuevos      int `json:"nuevos"`
	Contactados int `json:"contactados"`
	Descartados int `json:"descartados"`
}

func Summarize(list []Lead) Stats {
	stats := Stats{Total: len(list)}
	for _, l := range list {
		switch l.Estado {
		case StatusNew:
			stats.Nuevos++
		case StatusContacted:
			stats.Contactados++
		case StatusDiscarded:
			stats.Descartados++
		}
	}
	return stats
}

// Recent returns the first n leads. The CRM serves leads newest first.
func Recent(list []Lead, n int) []Lead {
	if n < 0 {
		n = 0
	}
	if n > len(list) {
		n = len(list)
	}
	out := make([]Lead, n)
	copy(out, list[:n])
	return out
}
