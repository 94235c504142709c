package teachers

// FavoriteStore хранит пары (пользователь, каноническое имя).
// Реализуется репозиторием в пакете database.
type FavoriteStore interface {
	Add(userID, teacherName string) error
	Remove(userID, teacherName string) error
	Exists(userID, teacherName string) (bool, error)
	List(userID string) ([]string, error)
}

// Favorites добавляет к справочнику избранных преподавателей.
// Имена канонизируются перед записью, поэтому "доц. Петров П. П."
// и "Петров П. П. (ДОТ)" считаются одним преподавателем.
type Favorites struct {
	store FavoriteStore
}

func NewFavorites(store FavoriteStore) *Favorites {
	return &Favorites{store: store}
}

// Add — повторное добавление той же пары не является ошибкой.
func (f *Favorites) Add(userID, teacherName string) error {
	return f.store.Add(userID, Normalize(teacherName))
}

func (f *Favorites) Remove(userID, teacherName string) error {
	return f.store.Remove(userID, Normalize(teacherName))
}

func (f *Favorites) IsFavorite(userID, teacherName string) (bool, error) {
	return f.store.Exists(userID, Normalize(teacherName))
}

func (f *Favorites) List(userID string) ([]string, error) {
	return f.store.List(userID)
}
