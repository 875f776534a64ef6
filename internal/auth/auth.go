package auth

// Service answers who may run gated commands. The authorized set and the
// super-user come fully from config; there is no runtime mutation.
type Service struct {
	authorized map[int64]struct{}
	superUser  int64
}

func New(authorized []int64, superUser int64) *Service {
	s := &Service{
		authorized: make(map[int64]struct{}, len(authorized)),
		superUser:  superUser,
	}
	for _, id := range authorized {
		s.authorized[id] = struct{}{}
	}
	if superUser != 0 {
		s.authorized[superUser] = struct{}{}
	}
	return s
}

func (s *Service) IsAuthorized(userID int64) bool {
	_, ok := s.authorized[userID]
	return ok
}

// IsSuperUser reports whether userID is the single designated super-user.
func (s *Service) IsSuperUser(userID int64) bool {
	return s.superUser != 0 && userID == s.superUser
}
