package models

// ContentKind discriminates the two likeable/commentable content types.
type ContentKind string

const (
	KindProject     ContentKind = "project"
	KindAchievement ContentKind = "achievement"
)

// ContentRef points at exactly one project or achievement.
type ContentRef struct {
	Kind ContentKind
	ID   uint
}

func ProjectRef(id uint) ContentRef {
	return ContentRef{Kind: KindProject, ID: id}
}

func AchievementRef(id uint) ContentRef {
	return ContentRef{Kind: KindAchievement, ID: id}
}

// ProjectID returns the id as a nullable foreign key when the ref is a project.
func (r ContentRef) ProjectID() *uint {
	if r.Kind == KindProject {
		id := r.ID
		return &id
	}
	return nil
}

// AchievementID returns the id as a nullable foreign key when the ref is an achievement.
func (r ContentRef) AchievementID() *uint {
	if r.Kind == KindAchievement {
		id := r.ID
		return &id
	}
	return nil
}
