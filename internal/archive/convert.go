package archive

import "github.com/preston-bernstein/nba-league-service/internal/league"

type records struct {
	teams   []TeamRecord
	players []PlayerRecord
	matches []MatchRecord
}

func toRecords(leagueName string, doc league.Document) records {
	out := records{
		teams:   make([]TeamRecord, 0, len(doc.Teams)),
		players: make([]PlayerRecord, 0, len(doc.Players)),
		matches: make([]MatchRecord, 0, len(doc.Matches)),
	}
	for i, t := range doc.Teams {
		out.teams = append(out.teams, TeamRecord{
			League: leagueName,
			Seq:    i,
			Name:   t.Name,
			City:   t.City,
			Wins:   t.Wins,
			Losses: t.Losses,
		})
	}
	for i, p := range doc.Players {
		rec := PlayerRecord{
			League:     leagueName,
			Seq:        i,
			Name:       p.Name,
			Origin:     p.Origin,
			StartYear:  p.StartYear,
			Position:   p.Position,
			Statistics: make([]StatisticRecord, 0, len(p.Statistics)),
		}
		if p.Team != nil {
			team := *p.Team
			rec.Team = &team
		}
		for j, s := range p.Statistics {
			rec.Statistics = append(rec.Statistics, StatisticRecord{
				Seq:      j,
				Minutes:  s.Minutes,
				Points:   s.Points,
				Assists:  s.Assists,
				Rebounds: s.Rebounds,
				PlayedAt: s.Date,
			})
		}
		out.players = append(out.players, rec)
	}
	for i, m := range doc.Matches {
		out.matches = append(out.matches, MatchRecord{
			League:    leagueName,
			Seq:       i,
			HomeTeam:  m.HomeTeam,
			AwayTeam:  m.AwayTeam,
			HomeScore: m.HomeScore,
			AwayScore: m.AwayScore,
			Date:      m.Date,
		})
	}
	return out
}

// toDocument expects rows already ordered by Seq.
func toDocument(in records) league.Document {
	doc := league.Document{
		Teams:   make([]league.TeamDoc, 0, len(in.teams)),
		Players: make([]league.PlayerDoc, 0, len(in.players)),
		Matches: make([]league.MatchDoc, 0, len(in.matches)),
	}
	for _, t := range in.teams {
		doc.Teams = append(doc.Teams, league.TeamDoc{Name: t.Name, City: t.City, Wins: t.Wins, Losses: t.Losses})
	}
	for _, p := range in.players {
		pd := league.PlayerDoc{
			Name:       p.Name,
			Origin:     p.Origin,
			StartYear:  p.StartYear,
			Position:   p.Position,
			Team:       p.Team,
			Statistics: make([]league.StatisticDoc, 0, len(p.Statistics)),
		}
		for _, s := range p.Statistics {
			pd.Statistics = append(pd.Statistics, league.StatisticDoc{
				Minutes:  s.Minutes,
				Points:   s.Points,
				Assists:  s.Assists,
				Rebounds: s.Rebounds,
				Date:     s.PlayedAt,
			})
		}
		doc.Players = append(doc.Players, pd)
	}
	for _, m := range in.matches {
		doc.Matches = append(doc.Matches, league.MatchDoc{
			HomeTeam:  m.HomeTeam,
			AwayTeam:  m.AwayTeam,
			HomeScore: m.HomeScore,
			AwayScore: m.AwayScore,
			Date:      m.Date,
		})
	}
	return doc
}
