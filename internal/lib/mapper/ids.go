package mapper

import "github.com/IlianBuh/Wall-service/internal/domain/models"

// PostsToIds collects ids of posts keeping their order
func PostsToIds(posts []models.Post) []string {
	length := len(posts)
	res := make([]string, length)

	for i := 0; i < length; i++ {
		res[i] = posts[i].Id
	}

	return res
}

// SameIds reports whether both feeds hold the same set of ids.
// Order and content are not compared.
func SameIds(a, b []models.Post) bool {
	set := make(map[string]struct{}, len(a))
	for i := range a {
		set[a[i].Id] = struct{}{}
	}

	other := make(map[string]struct{}, len(b))
	for i := range b {
		if _, ok := set[b[i].Id]; !ok {
			return false
		}
		other[b[i].Id] = struct{}{}
	}

	return len(set) == len(other)
}
