package gap

// techTerms is the curated set of technology and role terms that always pass
// the relevance check, regardless of length or shape.
var techTerms = map[string]struct{}{}

func init() {
	for _, t := range techTermList {
		techTerms[t] = struct{}{}
	}
}

var techTermList = []string{
	// Languages
	"python", "java", "javascript", "typescript", "go", "golang", "rust",
	"c", "c++", "c#", "ruby", "php", "scala", "kotlin", "swift", "r",
	"sql", "bash", "perl", "matlab",
	// Frameworks and runtimes
	"react", "angular", "vue", "node.js", "nodejs", "django", "flask",
	"spring", "rails", "express", ".net", "fastapi", "laravel",
	// Data and ML
	"tensorflow", "pytorch", "keras", "pandas", "numpy", "scikit-learn",
	"spark", "hadoop", "kafka", "airflow", "tableau", "powerbi",
	"machine learning", "deep learning", "data science", "nlp",
	// Infrastructure
	"docker", "kubernetes", "terraform", "ansible", "jenkins", "aws",
	"azure", "gcp", "lambda", "ec2", "s3", "cloudformation", "helm",
	"ci", "cd", "cicd", "ci cd", "devops", "linux", "unix", "nginx",
	// Storage
	"postgresql", "postgres", "mysql", "mongodb", "redis", "elasticsearch",
	"cassandra", "dynamodb", "sqlite", "oracle",
	// Practices and protocols
	"microservices", "rest", "graphql", "grpc", "api", "agile", "scrum",
	"git", "github", "gitlab", "tdd", "oauth", "websocket",
}

// isTechTerm reports whether a case-normalized term is in the curated set.
func isTechTerm(term string) bool {
	_, ok := techTerms[term]
	return ok
}
