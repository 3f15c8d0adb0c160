package domain

import "fmt"

//Tag ...
type Tag struct {
	Name         string `json:"name"`
	VocabularyID string `json:"vocabulary_id"`
}

//Group is the geographic scope of a dataset, either "world" or a lower case ISO3 code
type Group struct {
	Name string `json:"name"`
}

//Publisher holds the fields that are copied verbatim onto every dataset and showcase
type Publisher struct {
	Maintainer          string
	OwnerOrg            string
	DataUpdateFrequency string
	Tags                []Tag
}

//Dataset ...
type Dataset struct {
	ID                  string     `json:"id,omitempty"`
	Name                string     `json:"name"`
	Title               string     `json:"title"`
	Maintainer          string     `json:"maintainer"`
	OwnerOrg            string     `json:"owner_org"`
	DataUpdateFrequency string     `json:"data_update_frequency"`
	Subnational         string     `json:"subnational"`
	Tags                []Tag      `json:"tags"`
	Groups              []Group    `json:"groups"`
	Notes               string     `json:"notes"`
	MethodologyOther    string     `json:"methodology_other"`
	Caveats             string     `json:"caveats"`
	DatasetDate         string     `json:"dataset_date"`
	DatasetPreview      string     `json:"dataset_preview"`
	Resources           []Resource `json:"-"`
}

func NewDataset(name, title string, publisher Publisher, group string) *Dataset {
	tags := make([]Tag, len(publisher.Tags))
	copy(tags, publisher.Tags)

	return &Dataset{
		Name:                name,
		Title:               title,
		Maintainer:          publisher.Maintainer,
		OwnerOrg:            publisher.OwnerOrg,
		DataUpdateFrequency: publisher.DataUpdateFrequency,
		Subnational:         "0",
		Tags:                tags,
		Groups:              []Group{{Name: group}},
		DatasetPreview:      "resource_id",
	}
}

func (d *Dataset) AddResource(r Resource) {
	d.Resources = append(d.Resources, r)
}

//Resource is a single file attached to a dataset. FilePath points at the local copy that gets uploaded.
type Resource struct {
	ID                    string `json:"id,omitempty"`
	PackageID             string `json:"package_id,omitempty"`
	Name                  string `json:"name"`
	Description           string `json:"description"`
	Format                string `json:"format"`
	ResourceType          string `json:"resource_type"`
	URLType               string `json:"url_type"`
	URL                   string `json:"url,omitempty"`
	DatasetPreviewEnabled string `json:"dataset_preview_enabled"`
	FilePath              string `json:"-"`
}

func NewResource(name, description string, previewEnabled bool) Resource {
	preview := "False"
	if previewEnabled {
		preview = "True"
	}

	return Resource{
		Name:                  name,
		Description:           description,
		Format:                "csv",
		ResourceType:          "file.upload",
		URLType:               "upload",
		DatasetPreviewEnabled: preview,
	}
}

func (r Resource) FileName() string {
	return fmt.Sprintf("%s.%s", r.Name, r.Format)
}

//Showcase ...
type Showcase struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Notes    string `json:"notes"`
	URL      string `json:"url"`
	ImageURL string `json:"image_url"`
	Tags     []Tag  `json:"tags"`
}

//ResourceView is the quick chart preview attached to the first resource of a dataset
type ResourceView struct {
	ResourceID       string `json:"resource_id"`
	Description      string `json:"description"`
	Title            string `json:"title"`
	ViewType         string `json:"view_type"`
	HXLPreviewConfig string `json:"hxl_preview_config"`
}
