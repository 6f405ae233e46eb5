package configuration

import "github.com/adampresley/configinator"

type Config struct {
	AccessToken        string `flag:"token" env:"PICASA_ACCESS_TOKEN" default:"" description:"OAuth2 access token used to authorize requests"`
	Action             string `flag:"action" env:"PICASA_ACTION" default:"" description:"What to do. Valid values are 'create', 'update', 'update-metadata', and 'delete'"`
	AlbumID            string `flag:"album" env:"PICASA_ALBUM_ID" default:"" description:"ID of the album the photo belongs to"`
	AwsEndpointUrl     string `flag:"awsep" env:"AWS_ENDPOINT_URL" default:"" description:"AWS endpoint URL, used when the photo file is an s3:// URL"`
	AwsRegion          string `flag:"awsregion" env:"AWS_REGION" default:"us-east-1" description:"AWS region"`
	AwsAccessKeyId     string `flag:"awsaccesskeyid" env:"AWS_ACCESS_KEY_ID" default:"" description:"AWS access key ID"`
	AwsSecretAccessKey string `flag:"awssecretaccesskey" env:"AWS_SECRET_ACCESS_KEY" default:"" description:"AWS secret access key"`
	BaseURL            string `flag:"baseurl" env:"PICASA_BASE_URL" default:"https://picasaweb.google.com" description:"Base URL of the Picasa Web Albums API"`
	ContentType        string `flag:"contenttype" env:"PICASA_CONTENT_TYPE" default:"" description:"Content type of the photo. Guessed from the file when empty"`
	ETag               string `flag:"etag" env:"PICASA_ETAG" default:"" description:"Only update or delete when the photo still has this ETag. Defaults to '*'"`
	File               string `flag:"file" env:"PICASA_FILE" default:"" description:"Path to the photo file, or an s3://bucket/key URL"`
	LogLevel           string `flag:"loglevel" env:"LOG_LEVEL" default:"info" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
	MaxSize            int    `flag:"maxsize" env:"PICASA_MAX_SIZE" default:"0" description:"Scale the longest edge of JPEG and PNG photos down to this many pixels before uploading. 0 disables resizing"`
	PhotoID            string `flag:"photo" env:"PICASA_PHOTO_ID" default:"" description:"ID of the photo to update or delete"`
	Summary            string `flag:"summary" env:"PICASA_SUMMARY" default:"" description:"Summary (caption) of the photo"`
	Timeout            int    `flag:"timeout" env:"PICASA_TIMEOUT" default:"30" description:"Request timeout in seconds"`
	Title              string `flag:"title" env:"PICASA_TITLE" default:"" description:"Title of the photo. Defaults to the file name"`
	UserID             string `flag:"user" env:"PICASA_USER_ID" default:"default" description:"Picasa user ID. 'default' addresses the authorized user"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}
