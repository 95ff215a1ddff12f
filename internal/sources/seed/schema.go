package seed

// File is the top-level structure of a seed YAML file.
//
//	folders:
//	  - name: Work
//	    tags: [Projects, Meetings]
//	notes:
//	  - title: Project Alpha Planning
//	    content: "<p>Initial thoughts</p>"
//	    folder: Work
//	    pinned: true
//	    due: 2024-01-10
type File struct {
	Folders []FolderSeed `yaml:"folders"`
	Notes   []NoteSeed   `yaml:"notes"`
}

// FolderSeed describes one folder to create.
type FolderSeed struct {
	Name string   `yaml:"name"`
	Tags []string `yaml:"tags,omitempty"`
}

// NoteSeed describes one note to create. Folder is a folder name, not an id.
type NoteSeed struct {
	Title   string `yaml:"title"`
	Content string `yaml:"content,omitempty"`
	Folder  string `yaml:"folder,omitempty"`
	Pinned  bool   `yaml:"pinned,omitempty"`
	Due     string `yaml:"due,omitempty"`
}
