package constant

// ShakaPlayerScript is the pinned Shaka Player build loaded by generated DASH pages.
const ShakaPlayerScript = "https://cdnjs.cloudflare.com/ajax/libs/shaka-player/4.7.0/shaka-player.compiled.js"

// DashPageTemplate renders the web player page for DASH manifests.
// Every value reaching a <script> block is pre-encoded as a JSON literal.
const DashPageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{ .Title }}</title>
<script src="{{ .PlayerScript }}"></script>
<style>
html, body { margin: 0; width: 100%; height: 100%; background: #000; overflow: hidden; }
video { width: 100%; height: 100%; background: #000; }
</style>
</head>
<body>
<video id="video" autoplay controls playsinline></video>
<script>
const manifestUri = {{ .Manifest }};
const drmConfig = {{ .DRM }};
const authToken = {{ .AuthToken }};

async function init() {
  shaka.polyfill.installAll();
  if (!shaka.Player.isBrowserSupported()) {
    console.error('browser not supported');
    return;
  }

  const video = document.getElementById('video');
  const player = new shaka.Player();
  await player.attach(video);
  player.addEventListener('error', (event) => console.error('player error', event.detail));

  if (drmConfig !== null) {
    player.configure({ drm: drmConfig });
  }
{{- if .HasAuthToken }}

  player.getNetworkingEngine().registerRequestFilter((type, request) => {
    const types = shaka.net.NetworkingEngine.RequestType;
    if (type === types.MANIFEST || type === types.SEGMENT) {
      request.headers['Authorization'] = 'Bearer ' + authToken;
      request.headers['X-Auth-Token'] = authToken;
    }
  });
{{- end }}

  try {
    await player.load(manifestUri);
  } catch (e) {
    console.error('load failed', e);
  }
}

document.addEventListener('DOMContentLoaded', init);
</script>
</body>
</html>
`

// CleanupScriptTemplate is the single post-load injection shared by every sandboxed provider.
// Providers differ only in the selector list and the media flag.
const CleanupScriptTemplate = `(function () {
  var selectors = {{ .Selectors }};
  selectors.forEach(function (selector) {
    document.querySelectorAll(selector).forEach(function (el) {
      if (el.tagName === 'VIDEO' || el.tagName === 'IFRAME' || el.querySelector('video, iframe')) {
        return;
      }
      el.style.display = 'none';
    });
  });
{{- if .ForceMedia }}
  document.querySelectorAll('video, iframe').forEach(function (el) {
    el.style.display = 'block';
    el.style.visibility = 'visible';
    el.style.opacity = '1';
    if (el.tagName === 'VIDEO') {
      el.autoplay = true;
      el.muted = false;
      var playing = el.play();
      if (playing && playing.catch) {
        playing.catch(function () {});
      }
    }
  });
{{- end }}
})();
`

// ProviderTemplate scaffolds a custom provider definition.
const ProviderTemplate = `{
  "name": {{ json .Name }},
  "hosts": {{ json .Hosts }},
  "category": "sandboxed-embed",
  "trusted": false,
  "params": [
    { "key": "autoplay", "value": "1" }
  ],
  "fallbacks": [
    { "params": [{ "key": "autoplay", "value": "0" }] }
  ],
  "cleanup": {
    "selectors": ["[class*=ad]", "[class*=overlay]", "[class*=popup]"],
    "force_media": true
  }
}
`
