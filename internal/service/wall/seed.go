package wall

import (
	"strconv"
	"time"

	"github.com/IlianBuh/Wall-service/internal/domain/models"
)

type seedPost struct {
	author  string
	message string
	age     time.Duration
}

var seed = []seedPost{
	{"Anna", "Hey Greg, did you debug your coffee maker yet? Last cup tasted like JavaScript errors.", 2 * time.Hour},
	{"Adelaida", "Greg, saw your last coding session, pretty sure you broke Stack Overflow again! 🔥", 5 * time.Hour},
	{"Juho", "Greg, are you still coding in pajamas, or have you upgraded to full-time sweatpants mode?", 26 * time.Hour},
	{"Maija", "Greg, rumor has it your computer has more stickers than code running on it. Confirm?", 2 * 24 * time.Hour},
	{"Alex", "Yo Greg, just pulled an all-nighter on the assignment. Turns out sleep deprivation doesn't improve coding skills. Weird!", 3 * 24 * time.Hour},
	{"Sheryl", "Greg, when are we gonna deploy your latest dance moves to production? #AgileDancer", 5 * 24 * time.Hour},
}

// SeedPosts returns example content for the first run, newest-first
func SeedPosts(now time.Time) []models.Post {
	now = now.Truncate(time.Millisecond)
	posts := make([]models.Post, len(seed))

	for i, s := range seed {
		posts[i] = models.Post{
			Id:        strconv.Itoa(i + 1),
			Author:    s.author,
			Message:   s.message,
			CreatedAt: now.Add(-s.age),
		}
	}

	return posts
}
