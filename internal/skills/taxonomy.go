// Package skills extracts skills from a document using a fixed taxonomy of
// patterns and measures how well resume skills cover job skills.
package skills

import "regexp"

// Category is one group of the skill taxonomy.
type Category struct {
	Name    string
	Pattern *regexp.Regexp
}

func category(name, alternatives string) Category {
	return Category{Name: name, Pattern: regexp.MustCompile(`\b(` + alternatives + `)\b`)}
}

// Taxonomy lists the skill categories in the order they are applied.
var Taxonomy = []Category{
	category("programming", `python|java|javascript|typescript|c\+\+|c#|golang|go|rust|scala|kotlin|swift|ruby|php|perl|r|matlab|julia|dart|flutter|react native|objective-c`),
	category("web_frontend", `react|angular|vue|svelte|next\.?js|nuxt|ember|backbone|jquery|html5?|css3?|sass|scss|less|tailwind|bootstrap|material ui|webpack|vite|parcel`),
	category("web_backend", `node\.?js|express|django|flask|fastapi|spring boot?|spring|\.net|asp\.net|rails|laravel|symfony|nestjs|koa|hapi`),
	category("mobile", `ios|android|react native|flutter|xamarin|ionic|cordova|swift|kotlin|objective-c|swiftui`),
	category("databases", `sql|nosql|mysql|postgresql|postgres|mongodb|cassandra|redis|elasticsearch|dynamodb|oracle|sql server|mariadb|couchdb|neo4j|graph database`),
	category("cloud", `aws|azure|gcp|google cloud|cloud platform|heroku|digitalocean|lambda|ec2|s3|cloudfront|cloud functions|cloud run|kubernetes|k8s|docker|containers|serverless`),
	category("devops", `docker|kubernetes|k8s|jenkins|gitlab ci|github actions|circle ci|travis|terraform|ansible|puppet|chef|ci/cd|continuous integration|continuous deployment|devops`),
	category("data_science", `machine learning|deep learning|ai|artificial intelligence|data science|data analysis|tensorflow|pytorch|keras|scikit-learn|pandas|numpy|scipy|jupyter|data visualization|statistics|nlp|computer vision|neural networks?`),
	category("tools", `git|github|gitlab|bitbucket|jira|confluence|slack|trello|asana|vs code|visual studio|intellij|eclipse|postman|swagger|figma|sketch|adobe xd`),
	category("methodologies", `agile|scrum|kanban|waterfall|devops|tdd|test[- ]driven|bdd|ci/cd|microservices|rest|restful|graphql|api|soap|mvc|mvvm|solid|design patterns?`),
	category("soft_skills", `leadership|communication|problem[- ]solving|analytical|critical thinking|team work|collaboration|project management|time management|adaptability|creativity|mentoring|presentation`),
}

// families group related skills that earn partial credit for each other.
var families = []map[string]bool{
	set("python", "django", "flask", "fastapi", "pandas", "numpy"),
	set("javascript", "typescript", "react", "angular", "vue", "node.js", "nodejs"),
	set("aws", "azure", "gcp", "cloud", "lambda", "ec2", "s3"),
	set("docker", "kubernetes", "k8s", "containers", "devops"),
	set("sql", "mysql", "postgresql", "database", "nosql", "mongodb"),
	set("machine learning", "deep learning", "ai", "tensorflow", "pytorch", "data science"),
}

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}

// Related reports whether two skills belong to the same skill family.
func Related(a, b string) bool {
	for _, family := range families {
		if family[a] && family[b] {
			return true
		}
	}
	return false
}
