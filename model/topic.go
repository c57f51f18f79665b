package model

// Topic is one of the fixed boards posts are published into. The set is
// static; there is no topic table.
type Topic struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

var Topics = []*Topic{
	{Slug: "calculus", Name: "Calculus"},
	{Slug: "linear-algebra", Name: "Linear Algebra"},
	{Slug: "classical-mechanics", Name: "Classical Mechanics"},
	{Slug: "electromagnetism", Name: "Electromagnetism"},
	{Slug: "organic-chemistry", Name: "Organic Chemistry"},
	{Slug: "inorganic-chemistry", Name: "Inorganic Chemistry"},
	{Slug: "data-structures", Name: "Data Structures"},
	{Slug: "algorithms", Name: "Algorithms"},
}

var topicsBySlug = func() map[string]*Topic {
	m := make(map[string]*Topic, len(Topics))
	for _, topic := range Topics {
		m[topic.Slug] = topic
	}
	return m
}()

func IsTopic(slug string) bool {
	_, ok := topicsBySlug[slug]
	return ok
}
