package seeder

func Defaults() []Seeder {
	return []Seeder{
		RegionsSeeder{Names: []string{
			"United States", "Canada", "United Kingdom", "Ireland", "France", "Germany",
			"Spain", "Portugal", "Italy", "Netherlands", "Switzerland", "Sweden", "Poland",
			"India", "Singapore", "Indonesia", "Japan", "Australia", "Brazil", "South Africa",
		}},
		NamedSeeder{Table: "industries", Names: []string{
			"Software", "Finance", "Healthcare", "Education", "E-commerce", "Manufacturing",
			"Logistics", "Media", "Consulting", "Government",
		}},
		NamedSeeder{Table: "roles", Names: []string{
			"Backend Engineer", "Frontend Engineer", "Full Stack Engineer", "Mobile Engineer",
			"DevOps Engineer", "Data Engineer", "Data Scientist", "QA Engineer",
			"Product Manager", "UX Designer", "Engineering Manager",
		}},
	}
}
