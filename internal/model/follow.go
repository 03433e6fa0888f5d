package model

import "time"

// Follow is a directed edge: FollowerID follows FollowedID.
type Follow struct {
	FollowerID int       `json:"follower_id" gorm:"primaryKey;autoIncrement:false"`
	FollowedID int       `json:"followed_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Follower User `json:"-" gorm:"foreignKey:FollowerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Followed User `json:"-" gorm:"foreignKey:FollowedID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
