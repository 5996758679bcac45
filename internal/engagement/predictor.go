// Mantra - Creator and Audience Ranking and Safety Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mantra

// Package engagement predicts how well a draft post will perform and
// advises authors on timing, length, media and hashtags.
package engagement

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomtom215/mantra/internal/models"
)

// Factor weights. They sum to 1.0.
const (
	weightTimeOfDay        = 0.15
	weightDayOfWeek        = 0.10
	weightContentLength    = 0.10
	weightHasMedia         = 0.20
	weightHashtagCount     = 0.10
	weightAuthorFollowers  = 0.15
	weightAuthorEngagement = 0.20

	// adviceThreshold is the factor score below which advice is given.
	adviceThreshold = 0.7

	// RecentWindow bounds the author posts used for baselines.
	RecentWindow = 30 * 24 * time.Hour
)

// Draft is a post that has not been published yet.
type Draft struct {
	Text      string    `json:"text" validate:"required,max=10000"`
	CreatedAt time.Time `json:"created_at"`
	HasMedia  bool      `json:"has_media"`
}

// AuthorStats summarizes the author's audience and recent performance.
type AuthorStats struct {
	Followers   int64   `json:"followers"`
	RecentPosts int     `json:"recent_posts"`
	AvgLikes    float64 `json:"avg_likes"`
	AvgComments float64 `json:"avg_comments"`
	AvgShares   float64 `json:"avg_shares"`
}

// Breakdown holds the per-factor scores, each in [0,1].
type Breakdown struct {
	TimeOfDay        float64 `json:"time_of_day"`
	DayOfWeek        float64 `json:"day_of_week"`
	ContentLength    float64 `json:"content_length"`
	HasMedia         float64 `json:"has_media"`
	HashtagCount     float64 `json:"hashtag_count"`
	AuthorFollowers  float64 `json:"author_followers"`
	AuthorEngagement float64 `json:"author_avg_engagement"`
}

// Estimate is the expected interaction volume.
type Estimate struct {
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Shares   int64 `json:"shares"`
	Reach    int64 `json:"reach"`
}

// Advice is one actionable recommendation for the author.
type Advice struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// Prediction is the outcome of Predict.
type Prediction struct {
	Score           float64   `json:"score"`
	Rating          string    `json:"rating"`
	Breakdown       Breakdown `json:"breakdown"`
	Estimate        Estimate  `json:"estimate"`
	Recommendations []Advice  `json:"recommendations"`
}

// Predict scores a draft on a 0-100 scale from seven weighted factors.
func Predict(d Draft, author AuthorStats) Prediction {
	b := Breakdown{
		TimeOfDay:        timeOfDayScore(d.CreatedAt.Hour()),
		DayOfWeek:        dayOfWeekScore(d.CreatedAt.Weekday()),
		ContentLength:    lengthScore(utf8.RuneCountInString(d.Text)),
		HasMedia:         mediaScore(d.HasMedia),
		HashtagCount:     hashtagScore(strings.Count(d.Text, "#")),
		AuthorFollowers:  followersScore(author.Followers),
		AuthorEngagement: authorEngagementScore(author),
	}

	total := b.TimeOfDay*weightTimeOfDay +
		b.DayOfWeek*weightDayOfWeek +
		b.ContentLength*weightContentLength +
		b.HasMedia*weightHasMedia +
		b.HashtagCount*weightHashtagCount +
		b.AuthorFollowers*weightAuthorFollowers +
		b.AuthorEngagement*weightAuthorEngagement

	score := math.Max(0, math.Min(100, total*100))
	score = math.Round(score*100) / 100

	return Prediction{
		Score:           score,
		Rating:          Rating(score),
		Breakdown:       b,
		Estimate:        estimate(score, author),
		Recommendations: advise(b),
	}
}

// Rating maps a 0-100 score to a label.
func Rating(score float64) string {
	switch {
	case score >= 80:
		return "excellent"
	case score >= 65:
		return "good"
	case score >= 50:
		return "moderate"
	case score >= 35:
		return "low"
	default:
		return "poor"
	}
}

func timeOfDayScore(hour int) float64 {
	switch {
	case (hour >= 6 && hour <= 9) || (hour >= 12 && hour <= 14) || (hour >= 19 && hour <= 22):
		return 1.0
	case (hour >= 9 && hour <= 12) || (hour >= 14 && hour <= 19):
		return 0.7
	default:
		return 0.4
	}
}

func dayOfWeekScore(day time.Weekday) float64 {
	switch day {
	case time.Saturday, time.Sunday:
		return 1.0
	case time.Friday:
		return 0.9
	default:
		return 0.7
	}
}

func lengthScore(n int) float64 {
	switch {
	case n >= 100 && n <= 300:
		return 1.0
	case (n >= 50 && n < 100) || (n > 300 && n <= 500):
		return 0.7
	case n < 50:
		return 0.4
	default:
		return 0.5
	}
}

func mediaScore(hasMedia bool) float64 {
	if hasMedia {
		return 1.0
	}
	return 0.3
}

func hashtagScore(n int) float64 {
	switch {
	case n >= 3 && n <= 5:
		return 1.0
	case (n >= 1 && n <= 2) || (n >= 6 && n <= 8):
		return 0.7
	case n == 0:
		return 0.3
	default:
		return 0.4
	}
}

func followersScore(n int64) float64 {
	switch {
	case n >= 10000:
		return 1.0
	case n >= 5000:
		return 0.9
	case n >= 1000:
		return 0.7
	case n >= 100:
		return 0.5
	default:
		return 0.3
	}
}

// authorEngagementScore weights comments twice and shares three times a like.
func authorEngagementScore(a AuthorStats) float64 {
	if a.RecentPosts == 0 {
		return 0.5
	}
	avg := a.AvgLikes + a.AvgComments*2 + a.AvgShares*3
	switch {
	case avg >= 500:
		return 1.0
	case avg >= 200:
		return 0.8
	case avg >= 100:
		return 0.6
	case avg >= 50:
		return 0.4
	default:
		return 0.3
	}
}

// estimate scales the author's baselines by score/50, 50 being an average draft.
func estimate(score float64, a AuthorStats) Estimate {
	likes, comments, shares := a.AvgLikes, a.AvgComments, a.AvgShares
	if likes == 0 {
		likes = 10
	}
	if comments == 0 {
		comments = 2
	}
	if shares == 0 {
		shares = 1
	}

	m := score / 50
	return Estimate{
		Likes:    int64(likes * m),
		Comments: int64(comments * m),
		Shares:   int64(shares * m),
		Reach:    int64(likes * 10 * m),
	}
}

func advise(b Breakdown) []Advice {
	advice := []Advice{}
	if b.TimeOfDay < adviceThreshold {
		advice = append(advice, Advice{"timing", "Post during peak hours (6-9 AM, 12-2 PM, or 7-10 PM) for better engagement", "high"})
	}
	if b.DayOfWeek < adviceThreshold {
		advice = append(advice, Advice{"timing", "Weekend posts typically get higher engagement", "medium"})
	}
	if b.ContentLength < adviceThreshold {
		advice = append(advice, Advice{"content", "Aim for 100-300 characters for optimal engagement", "high"})
	}
	if b.HasMedia < adviceThreshold {
		advice = append(advice, Advice{"content", "Add images or videos to increase engagement", "high"})
	}
	if b.HashtagCount < adviceThreshold {
		advice = append(advice, Advice{"content", "Use 3-5 relevant hashtags for better discoverability", "medium"})
	}
	return advice
}

// StatsFromPosts builds AuthorStats from the author's posts created within
// RecentWindow before now.
func StatsFromPosts(author *models.Actor, posts []models.ContentItem, now time.Time) AuthorStats {
	stats := AuthorStats{}
	if author != nil {
		stats.Followers = author.Engagement.Followers
	}

	cutoff := now.Add(-RecentWindow)
	var likes, comments, shares float64
	for i := range posts {
		p := &posts[i]
		if p.Kind != models.KindPost || p.CreatedAt.Before(cutoff) {
			continue
		}
		if author != nil && p.AuthorID != author.ID {
			continue
		}
		stats.RecentPosts++
		likes += float64(p.Engagement.Likes)
		comments += float64(p.Engagement.Comments)
		shares += float64(p.Engagement.Shares)
	}

	if stats.RecentPosts > 0 {
		n := float64(stats.RecentPosts)
		stats.AvgLikes = likes / n
		stats.AvgComments = comments / n
		stats.AvgShares = shares / n
	}
	return stats
}

// HashtagReport describes whether a post uses an effective number of hashtags.
type HashtagReport struct {
	Total           int      `json:"total_hashtags"`
	Effectiveness   float64  `json:"effectiveness_score"`
	Recommendations []string `json:"recommendations"`
}

// HashtagEffectiveness rates a hashtag list; three to five is optimal.
func HashtagEffectiveness(tags []string) HashtagReport {
	n := len(tags)
	switch {
	case n >= 3 && n <= 5:
		return HashtagReport{n, 1.0, []string{"Great hashtag count!"}}
	case n < 3:
		return HashtagReport{n, 0.6, []string{"Consider adding more hashtags (3-5 is optimal)"}}
	case n > 10:
		return HashtagReport{n, 0.4, []string{"Too many hashtags - reduce to 3-5 for better engagement"}}
	default:
		return HashtagReport{n, 0.8, []string{"Good hashtag count"}}
	}
}

// PostingTime is a recommended hour with a 0-100 score.
type PostingTime struct {
	Time  string `json:"time"`
	Day   string `json:"day"`
	Score int    `json:"score"`
}

// DefaultPostingTimes is returned when an author has no history.
var DefaultPostingTimes = []PostingTime{
	{Time: "08:00", Day: "weekday", Score: 85},
	{Time: "13:00", Day: "weekday", Score: 80},
	{Time: "20:00", Day: "weekend", Score: 90},
}

// BestPostingTimes returns the three hours with the highest mean weighted
// engagement among the given posts. Ties go to the earlier hour.
func BestPostingTimes(posts []models.ContentItem) []PostingTime {
	type bucket struct {
		hour  int
		total float64
		n     int
	}
	buckets := make(map[int]*bucket)
	for i := range posts {
		p := &posts[i]
		h := p.CreatedAt.Hour()
		b, ok := buckets[h]
		if !ok {
			b = &bucket{hour: h}
			buckets[h] = b
		}
		b.total += float64(p.Engagement.Likes + 2*p.Engagement.Comments + 3*p.Engagement.Shares)
		b.n++
	}
	if len(buckets) == 0 {
		return append([]PostingTime(nil), DefaultPostingTimes...)
	}

	ranked := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ranked = append(ranked, b)
	}
	sort.Slice(ranked, func(i, j int) bool {
		mi, mj := ranked[i].total/float64(ranked[i].n), ranked[j].total/float64(ranked[j].n)
		if mi != mj {
			return mi > mj
		}
		return ranked[i].hour < ranked[j].hour
	})

	out := make([]PostingTime, 0, 3)
	for _, b := range ranked[:min(3, len(ranked))] {
		day := "weekday"
		if b.hour >= 19 || b.hour <= 9 {
			day = "weekend"
		}
		mean := b.total / float64(b.n)
		out = append(out, PostingTime{
			Time:  formatHour(b.hour),
			Day:   day,
			Score: min(100, int(mean/10)),
		})
	}
	return out
}

func formatHour(h int) string {
	return time.Date(2000, 1, 1, h, 0, 0, 0, time.UTC).Format("15:04")
}
