package mockapi

import (
	"fmt"

	"artikel/auth"
	"artikel/models"
)

const seedPassword = "password123"

// seedUsers builds the three fixture accounts persisted on first load.
// Passwords are fixture placeholders, stored bcrypt-hashed. A hashing
// failure surfaces as an error; seeding unloggable accounts would be worse.
func (b *Backend) seedUsers() ([]models.StoredUser, error) {
	now := b.timestamp()
	hash, err := auth.HashPassword(seedPassword)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}
	return []models.StoredUser{
		{ID: 1, Username: "admin", PasswordHash: hash, Role: models.RoleAdmin, Email: "admin@example.com", CreatedAt: now, UpdatedAt: now},
		{ID: 2, Username: "user1", PasswordHash: hash, Role: models.RoleUser, Email: "user1@example.com", CreatedAt: now, UpdatedAt: now},
		{ID: 3, Username: "user2", PasswordHash: hash, Role: models.RoleUser, Email: "user2@example.com", CreatedAt: now, UpdatedAt: now},
	}, nil
}

func seedCategories() []models.Category {
	const ts = "2024-01-01T00:00:00Z"
	return []models.Category{
		{ID: 1, Name: "Technology", Description: "Articles about technology and innovation", CreatedAt: ts, UpdatedAt: ts},
		{ID: 2, Name: "Design", Description: "Articles about design and UI/UX", CreatedAt: ts, UpdatedAt: ts},
		{ID: 3, Name: "Development", Description: "Articles about application development", CreatedAt: ts, UpdatedAt: ts},
		{ID: 4, Name: "AI", Description: "Articles about artificial intelligence", CreatedAt: ts, UpdatedAt: ts},
		{ID: 5, Name: "Web3", Description: "Articles about blockchain and Web3", CreatedAt: ts, UpdatedAt: ts},
	}
}

func section(title, content string) models.ArticleSection {
	return models.ArticleSection{Title: title, Content: content}
}

func seedArticles() []models.ArticleRecord {
	return []models.ArticleRecord{
		{
			ID:          1,
			Title:       "Cybersecurity Essentials Every Developer Should Know",
			Description: "Fundamental security practices every developer should implement to protect applications and users.",
			Date:        "2025-04-13",
			Author:      "Admin",
			Category:    "Technology",
			Tags:        []string{"Technology", "Security"},
			Content: &models.ArticleContent{
				Introduction: "Cybersecurity is not just a concern for IT departments. Every developer who ships code that handles user data carries part of the responsibility.",
				Sections: []models.ArticleSection{
					section("Authentication & Authorization", "Use bcrypt for password hashing, tokens with proper expiration, and role-based access control."),
					section("Data Protection", "Encrypt data at rest and in transit, validate all input, and use parameterized queries."),
				},
				Conclusion: "Security is an ongoing process, not a one-time implementation.",
			},
		},
		{
			ID:          2,
			Title:       "The Future of Work: Remote-First Teams and Digital Tools",
			Description: "How remote work is reshaping the tech industry and the tools making it possible.",
			Date:        "2025-04-12",
			Author:      "Admin",
			Category:    "Technology",
			Tags:        []string{"Technology", "Work"},
			Content: &models.ArticleContent{
				Introduction: "The shift to remote work has changed how teams think about productivity, collaboration and work-life balance.",
				Sections: []models.ArticleSection{
					section("The Remote-First Advantage", "Access to a global talent pool, lower overhead and better focus."),
				},
				Conclusion: "Companies that adapt will keep the edge in hiring.",
			},
		},
		{
			ID:          3,
			Title:       "Design Systems: Why Your Team Needs One in 2025",
			Description: "The benefits of a design system and how it improves a team's productivity.",
			Date:        "2025-04-11",
			Author:      "Admin",
			Category:    "Design",
			Tags:        []string{"Design", "Technology"},
			Content: &models.ArticleContent{
				Introduction: "Design systems have moved from nice-to-have to essential tooling for product teams.",
				Sections: []models.ArticleSection{
					section("What Makes a Great Design System", "Component libraries, design tokens and clear usage guidelines."),
				},
				Conclusion: "Consistency pays for itself within a quarter.",
			},
		},
		{
			ID:          4,
			Title:       "Getting Started with Large Language Models",
			Description: "A practical introduction to building products on top of large language models.",
			Date:        "2025-03-28",
			Author:      "Admin",
			Category:    "AI",
			Tags:        []string{"AI", "Technology"},
			Content: &models.ArticleContent{
				Introduction: "Large language models opened a new class of product features, from summarization to agents.",
				Sections: []models.ArticleSection{
					section("Prompting Basics", "Treat prompts as code: version them, test them, review them."),
					section("Evaluation", "Without an eval set you are flying blind."),
				},
				Conclusion: "Start small, measure, iterate.",
			},
		},
		{
			ID:          5,
			Title:       "Understanding Web3 Beyond the Hype",
			Description: "What decentralized technology actually solves, and what it does not.",
			Date:        "2025-03-15",
			Author:      "Admin",
			Category:    "Web3",
			Tags:        []string{"Web3"},
			Content: &models.ArticleContent{
				Introduction: "Separating the engineering substance of decentralized systems from the marketing noise.",
				Sections: []models.ArticleSection{
					section("Consensus Costs", "Decentralization trades latency and throughput for trust assumptions."),
				},
				Conclusion: "Pick the trust model your problem actually needs.",
			},
		},
		{
			ID:          6,
			Title:       "API Design Guidelines for Growing Teams",
			Description: "Conventions that keep REST APIs predictable as a codebase and team grow.",
			Date:        "2025-02-20",
			Author:      "Admin",
			Category:    "Development",
			Tags:        []string{"Development", "Technology"},
			Content: &models.ArticleContent{
				Introduction: "A predictable API surface is a force multiplier for every client team.",
				Sections: []models.ArticleSection{
					section("Envelopes and Errors", "Return one response shape everywhere and map failures to messages, not stack traces."),
				},
				Conclusion: "Consistency beats cleverness.",
			},
		},
		{
			ID:          7,
			Title:       "Figma's New Dev Mode: A Game-Changer for Designers and Developers",
			Description: "How Figma's latest features are bridging the gap between design and development.",
			Date:        "2025-02-04",
			Author:      "Admin",
			Category:    "Design",
			Tags:        []string{"Design", "Tools"},
			Content: &models.ArticleContent{
				Introduction: "Dev Mode streamlines the design-to-development handoff with ready-to-implement specs.",
				Sections: []models.ArticleSection{
					section("What is Dev Mode?", "A developer-focused workspace with precise spacing, colors and exports."),
					section("Why It Matters", "Fewer handoff errors, shorter build times."),
				},
				Conclusion: "Handoff friction is a solvable problem.",
			},
		},
		{
			ID:          8,
			Title:       "Observability for Small Services",
			Description: "Logging, metrics and tracing sized for teams that run a handful of services.",
			Date:        "2025-01-18",
			Author:      "Admin",
			Category:    "Development",
			Tags:        []string{"Development"},
			Content: &models.ArticleContent{
				Introduction: "You do not need a platform team to know what your service is doing in production.",
				Sections: []models.ArticleSection{
					section("Structured Logs First", "Grep-able structured logs cover most debugging needs."),
				},
				Conclusion: "Start with logs, add metrics when questions repeat.",
			},
		},
		{
			ID:          9,
			Title:       "Accessible Interfaces Are Better Interfaces",
			Description: "Practical accessibility work that improves the experience for every user.",
			Date:        "2025-01-05",
			Author:      "Admin",
			Category:    "Design",
			Tags:        []string{"Design", "Accessibility"},
			Content: &models.ArticleContent{
				Introduction: "Accessibility constraints tend to produce clearer, more robust interfaces for everyone.",
				Sections: []models.ArticleSection{
					section("Keyboard First", "If it works without a mouse, it usually works everywhere."),
				},
				Conclusion: "Accessibility is a quality bar, not a feature.",
			},
		},
	}
}
