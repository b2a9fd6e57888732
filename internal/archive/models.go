package archive

import "time"

// TeamRecord is a team row. Seq keeps registration order.
type TeamRecord struct {
	ID     uint   `gorm:"primaryKey"`
	League string `gorm:"index:idx_team_league_seq;not null"`
	Seq    int    `gorm:"index:idx_team_league_seq;not null"`
	Name   string `gorm:"not null"`
	City   string `gorm:"not null"`
	Wins   int
	Losses int
}

func (TeamRecord) TableName() string { return "league_teams" }

// PlayerRecord is a player row. A nil Team marks a free agent.
type PlayerRecord struct {
	ID         uint   `gorm:"primaryKey"`
	League     string `gorm:"index:idx_player_league_seq;not null"`
	Seq        int    `gorm:"index:idx_player_league_seq;not null"`
	Name       string `gorm:"not null"`
	Origin     string `gorm:"not null"`
	StartYear  int
	Position   string
	Team       *string
	Statistics []StatisticRecord `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
}

func (PlayerRecord) TableName() string { return "league_players" }

type StatisticRecord struct {
	ID       uint `gorm:"primaryKey"`
	PlayerID uint `gorm:"index;not null"`
	Seq      int  `gorm:"not null"`
	Minutes  float64
	Points   int
	Assists  int
	Rebounds int
	PlayedAt time.Time
}

func (StatisticRecord) TableName() string { return "league_player_statistics" }

type MatchRecord struct {
	ID        uint   `gorm:"primaryKey"`
	League    string `gorm:"index:idx_match_league_seq;not null"`
	Seq       int    `gorm:"index:idx_match_league_seq;not null"`
	HomeTeam  string `gorm:"not null"`
	AwayTeam  string `gorm:"not null"`
	HomeScore int
	AwayScore int
	Date      string `gorm:"type:char(10);not null"`
}

func (MatchRecord) TableName() string { return "league_matches" }

func allModels() []any {
	return []any{&TeamRecord{}, &PlayerRecord{}, &StatisticRecord{}, &MatchRecord{}}
}
