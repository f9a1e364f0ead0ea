package games

// MoodProfile is one mood the generator can hand out.
type MoodProfile struct {
	Label       string   `json:"label"`
	Emoji       string   `json:"emoji"`
	Description string   `json:"description"`
	Tips        []string `json:"tips"`
	Energy      int      `json:"energy"`
}

type moodCategory struct {
	key   string
	name  string
	moods []MoodProfile
}

var moodCategories = []moodCategory{
	{key: "energy", name: "Energy Level", moods: []MoodProfile{
		{Label: "Hyper Coder", Emoji: "⚡", Description: "Lightning fast code ninja mode!", Tips: []string{"Perfect for tackling complex algorithms", "Great time for refactoring"}, Energy: 95},
		{Label: "Energized Dev", Emoji: "🚀", Description: "Ready to launch into any project!", Tips: []string{"Start that new feature you've been planning", "Good for learning new technologies"}, Energy: 85},
		{Label: "Steady Worker", Emoji: "🔧", Description: "Consistent and reliable productivity.", Tips: []string{"Focus on documentation", "Perfect for code reviews"}, Energy: 70},
		{Label: "Low Battery", Emoji: "🔋", Description: "Running on reserve power.", Tips: []string{"Stick to simple bug fixes", "Maybe time for a coffee break"}, Energy: 30},
		{Label: "Sleep Mode", Emoji: "😴", Description: "System needs recharging soon.", Tips: []string{"Light tasks only", "Consider calling it a day"}, Energy: 15},
	}},
	{key: "focus", name: "Focus Mode", moods: []MoodProfile{
		{Label: "Laser Focus", Emoji: "🎯", Description: "Unbreakable concentration achieved!", Tips: []string{"Tackle the hardest problems", "Turn off all notifications"}, Energy: 90},
		{Label: "Deep Think", Emoji: "🧠", Description: "Processing complex thoughts...", Tips: []string{"Perfect for architecture planning", "Good for system design"}, Energy: 80},
		{Label: "Scattered Mind", Emoji: "🌪️", Description: "Thoughts are everywhere at once.", Tips: []string{"Break tasks into smaller chunks", "Use the Pomodoro technique"}, Energy: 45},
		{Label: "Distracted Dev", Emoji: "🐿️", Description: "Squirrel! Wait, what were we coding?", Tips: []string{"Close social media tabs", "Find a quiet workspace"}, Energy: 35},
	}},
	{key: "creativity", name: "Creative Flow", moods: []MoodProfile{
		{Label: "Creative Genius", Emoji: "💡", Description: "Ideas flowing like a waterfall!", Tips: []string{"Start that side project", "Brainstorm new features"}, Energy: 95},
		{Label: "Innovation Mode", Emoji: "🎨", Description: "Painting code with artistic flair.", Tips: []string{"Experiment with new patterns", "Redesign that old UI"}, Energy: 85},
		{Label: "Builder Spirit", Emoji: "🔨", Description: "Ready to construct digital masterpieces.", Tips: []string{"Perfect for prototyping", "Try a new framework"}, Energy: 75},
		{Label: "Maintenance Mode", Emoji: "🔧", Description: "Steady improvements and fixes.", Tips: []string{"Optimize existing code", "Update dependencies"}, Energy: 60},
		{Label: "Creative Block", Emoji: "🧱", Description: "The well of ideas has run dry.", Tips: []string{"Read some tech blogs", "Take a walk to refresh"}, Energy: 25},
	}},
	{key: "social", name: "Team Vibe", moods: []MoodProfile{
		{Label: "Team Player", Emoji: "🤝", Description: "Ready to collaborate and share knowledge!", Tips: []string{"Great time for pair programming", "Help teammates with code reviews"}, Energy: 80},
		{Label: "Mentor Mode", Emoji: "👨‍🏫", Description: "Sharing wisdom with the dev community.", Tips: []string{"Answer questions on Stack Overflow", "Write technical documentation"}, Energy: 75},
		{Label: "Solo Warrior", Emoji: "🥷", Description: "Flying solo on this coding mission.", Tips: []string{"Focus on personal projects", "Deep dive into challenging problems"}, Energy: 70},
		{Label: "Meeting Survivor", Emoji: "🏃‍♂️", Description: "Just escaped from meeting hell.", Tips: []string{"Need quiet time to decompress", "Catch up on actual coding work"}, Energy: 40},
		{Label: "Hermit Coder", Emoji: "🏠", Description: "Do not disturb - coding in progress.", Tips: []string{"Perfect for heads-down development", "Mute all notifications"}, Energy: 65},
	}},
}

var moodCompatibility = map[string][]string{
	"Team Player":     {"Mentor Mode", "Creative Genius", "Innovation Mode"},
	"Mentor Mode":     {"Team Player", "Builder Spirit", "Deep Think"},
	"Solo Warrior":    {"Laser Focus", "Creative Genius", "Hermit Coder"},
	"Creative Genius": {"Innovation Mode", "Team Player", "Builder Spirit"},
	"Hyper Coder":     {"Energized Dev", "Laser Focus", "Innovation Mode"},
}

var defaultCompatibility = []string{"Fellow Coders", "Understanding Devs"}

// TimeOfDay buckets the hour a mood was generated in.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	LateNight TimeOfDay = "latenight"
)

type timeModifier struct {
	multiplier float64
	bonus      string
}

var timeModifiers = map[TimeOfDay]timeModifier{
	Morning:   {multiplier: 1.2, bonus: "Morning Fresh Bonus!"},
	Afternoon: {multiplier: 1.0, bonus: "Peak Performance Time!"},
	Evening:   {multiplier: 0.9, bonus: "Evening Wind-down Mode"},
	LateNight: {multiplier: 0.7, bonus: "Night Owl Special!"},
}

// TimeOfDayAt maps an hour of the day to its bucket: 6-11 morning, 12-17
// afternoon, 18-21 evening, the rest late night.
func TimeOfDayAt(hour int) TimeOfDay {
	switch {
	case hour >= 6 && hour < 12:
		return Morning
	case hour >= 12 && hour < 18:
		return Afternoon
	case hour >= 18 && hour < 22:
		return Evening
	default:
		return LateNight
	}
}

// Productivity labels an energy level.
func Productivity(energy int) string {
	switch {
	case energy > 70:
		return "High"
	case energy > 40:
		return "Medium"
	default:
		return "Low"
	}
}
