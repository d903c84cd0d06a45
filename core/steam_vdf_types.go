package core

type LibraryFolders struct {
	LibraryFolders map[string]LibraryFolder `json:"libraryfolders"`
}

type LibraryFolder struct {
	Path string            `json:"path"`
	Apps map[string]string `json:"apps"`
}
